package tff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateStrings(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateGround, "GROUND"},
		{StateEscape, "ESC"},
		{StateEscapeIntermediate, "ESC_INTERMEDIATE"},
		{StateCSIParameter, "CSI_PARAMETER"},
		{StateCSIIntermediate, "CSI_INTERMEDIATE"},
		{StateSS2, "SS2"},
		{StateSS3, "SS3"},
		{StateOSC, "OSC"},
		{StateOSCEscape, "OSC_ESC"},
		{StateStr, "STR"},
		{StateStrEscape, "STR_ESC"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}

	assert.Equal(t, "State(99)", State(99).String())
}

func TestStateDefaultValue(t *testing.T) {
	var s State
	assert.Equal(t, StateGround, s, "zero value must be GROUND")
}

func TestStateIsValid(t *testing.T) {
	for s := StateGround; s <= StateStrEscape; s++ {
		assert.True(t, s.IsValid(), "state %v should be valid", s)
	}
	assert.False(t, State(99).IsValid())
}
