package tff

import (
	"fmt"
	"strings"
)

// MaxCSIParams bounds how many parameter groups ParseCSIParams will return.
// A sequence with more groups than this is almost certainly an attack or a
// runaway generator rather than a legitimate control sequence; extra groups
// are silently dropped.
const MaxCSIParams = 32

// ParseCSIParams groups the raw parameter code points a Parser collects in
// CSI_PARAMETER/CSI_INTERMEDIATE state into CSI's two-level structure:
// groups separated by ';' (0x3B), each optionally split into subparameters
// by ':' (0x3A). An empty field (consecutive separators, or a leading or
// trailing separator) yields 0, matching ECMA-48's default-value
// convention; an empty params slice yields nil. Non-digit code points are ignored rather than
// rejected: by the time a Context calls this, the Parser has already
// confirmed the code points came from a valid CSI parameter byte range.
//
// This is an opt-in helper, not something the core FSM calls itself: a
// Context's DispatchCSI can use it to turn the params []rune it receives
// into numbers, or interpret the raw code points itself.
func ParseCSIParams(params []rune) [][]uint16 {
	if len(params) == 0 {
		return nil
	}

	var result [][]uint16
	var group []uint16
	var field uint32
	// pendingGroup tracks whether a group is "open" and must be flushed --
	// either because a digit has been seen since the last ';', or because
	// the rune just processed was itself a separator leaving an implicit
	// empty field/group behind it. Without this, a trailing ';' or ':'
	// would silently lose its empty default-value group.
	pendingGroup := true

	flushField := func() {
		group = append(group, uint16(field))
		field = 0
	}
	flushGroup := func() {
		flushField()
		result = append(result, group)
		group = nil
		pendingGroup = false
	}

	for _, r := range params {
		switch {
		case r == ';':
			flushGroup()
			pendingGroup = true
		case r == ':':
			flushField()
		case r >= '0' && r <= '9':
			pendingGroup = true
			field = field*10 + uint32(r-'0')
			if field > 0xFFFF {
				field = 0xFFFF
			}
		default:
			// not a digit or separator; ignore
		}
		if len(result) >= MaxCSIParams {
			return result
		}
	}
	if pendingGroup {
		flushGroup()
	}

	return result
}

// FormatCSIParams renders groups the way they appeared on the wire, for
// logging and tests.
func FormatCSIParams(groups [][]uint16) string {
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		sub := make([]string, 0, len(group))
		for _, v := range group {
			sub = append(sub, fmt.Sprintf("%d", v))
		}
		parts = append(parts, strings.Join(sub, ":"))
	}
	return strings.Join(parts, ";")
}
