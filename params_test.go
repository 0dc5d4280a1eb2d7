package tff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSIParamsEmpty(t *testing.T) {
	assert.Nil(t, ParseCSIParams(nil))
	assert.Nil(t, ParseCSIParams([]rune{}))
}

func TestParseCSIParamsSingle(t *testing.T) {
	assert.Equal(t, [][]uint16{{5}}, ParseCSIParams([]rune("5")))
}

func TestParseCSIParamsMultipleGroups(t *testing.T) {
	assert.Equal(t, [][]uint16{{1}, {31}}, ParseCSIParams([]rune("1;31")))
}

func TestParseCSIParamsLeadingEmptyField(t *testing.T) {
	assert.Equal(t, [][]uint16{{0}, {1}}, ParseCSIParams([]rune(";1")))
}

func TestParseCSIParamsTrailingEmptyField(t *testing.T) {
	assert.Equal(t, [][]uint16{{5}, {0}}, ParseCSIParams([]rune("5;")))
}

func TestParseCSIParamsSubparameters(t *testing.T) {
	assert.Equal(t, [][]uint16{{38, 2, 255, 0, 0}}, ParseCSIParams([]rune("38:2:255:0:0")))
}

func TestParseCSIParamsSubparametersAcrossGroups(t *testing.T) {
	assert.Equal(t, [][]uint16{{38, 2, 255, 128, 0}, {48, 5, 22}},
		ParseCSIParams([]rune("38:2:255:128:0;48:5:22")))
}

func TestParseCSIParamsIgnoresNonDigits(t *testing.T) {
	assert.Equal(t, [][]uint16{{12}}, ParseCSIParams([]rune("1 2")))
}

func TestParseCSIParamsClampsToUint16Max(t *testing.T) {
	assert.Equal(t, [][]uint16{{0xFFFF}}, ParseCSIParams([]rune("999999")))
}

func TestFormatCSIParamsRoundTrip(t *testing.T) {
	groups := ParseCSIParams([]rune("38:2:255:0:0;1"))
	assert.Equal(t, "38:2:255:0:0;1", FormatCSIParams(groups))
}
