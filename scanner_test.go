package tff

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func collectRunes(s *Scanner) []rune {
	var out []rune
	for {
		r, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

func TestScannerASCII(t *testing.T) {
	s := NewScanner()
	s.Assign([]byte("hello"), "utf-8")
	assert.Equal(t, []rune("hello"), collectRunes(s))
	assert.True(t, s.Exhausted())
}

func TestScannerMultiByteUTF8(t *testing.T) {
	s := NewScanner()
	s.Assign([]byte("héllo wörld 日本語"), "utf-8")
	assert.Equal(t, []rune("héllo wörld 日本語"), collectRunes(s))
}

func TestScannerEmptyChunk(t *testing.T) {
	s := NewScanner()
	s.Assign(nil, "utf-8")
	_, ok := s.Next()
	assert.False(t, ok)
	assert.True(t, s.Exhausted())
}

func TestScannerMalformedLeadByte(t *testing.T) {
	s := NewScanner()
	// 0xFF is never a valid UTF-8 lead byte.
	s.Assign([]byte{'a', 0xFF, 'b'}, "utf-8")
	assert.Equal(t, []rune{'a', utf8.RuneError, 'b'}, collectRunes(s))
}

func TestScannerMalformedContinuation(t *testing.T) {
	s := NewScanner()
	// 0xE0 starts a 3-byte sequence; 'x' is not a valid continuation byte.
	s.Assign([]byte{0xE0, 'x'}, "utf-8")
	got := collectRunes(s)
	assert.Equal(t, []rune{utf8.RuneError, 'x'}, got)
}

func TestScannerOverlongEncodingRejected(t *testing.T) {
	s := NewScanner()
	// 0xC0 0x80 is an overlong encoding of NUL: both bytes validate as a
	// structurally complete 2-byte sequence, so the whole pair is consumed
	// as a single malformed attempt and yields exactly one U+FFFD.
	s.Assign([]byte{0xC0, 0x80}, "utf-8")
	got := collectRunes(s)
	assert.Equal(t, []rune{utf8.RuneError}, got)
	assert.True(t, s.Exhausted())
}

func TestScannerSurrogateRejected(t *testing.T) {
	s := NewScanner()
	// ED A0 80 would encode U+D800, a surrogate: all three bytes validate
	// structurally, so the whole sequence is consumed as one malformed
	// attempt and yields exactly one U+FFFD, not one per byte.
	s.Assign([]byte{0xED, 0xA0, 0x80}, "utf-8")
	got := collectRunes(s)
	assert.Equal(t, []rune{utf8.RuneError}, got)
	assert.True(t, s.Exhausted())
}

func TestScannerValidContinuationThenBadContinuation(t *testing.T) {
	s := NewScanner()
	// 0xE0 starts a 3-byte sequence; 0xA0 validates as its first
	// continuation byte, but 'A' (0x41) is not a continuation byte at all.
	// Only the bytes validated before the failure (lead + first
	// continuation) belong to the malformed attempt; 'A' is left for a
	// fresh decode.
	s.Assign([]byte{0xE0, 0xA0, 0x41}, "utf-8")
	got := collectRunes(s)
	assert.Equal(t, []rune{utf8.RuneError, 'A'}, got)
	assert.True(t, s.Exhausted())
}

func TestScannerPartialSequenceAcrossAssign(t *testing.T) {
	s := NewScanner()
	full := "日" // E6 97 A5
	b := []byte(full)

	s.Assign(b[:1], "utf-8")
	_, ok := s.Next()
	assert.False(t, ok, "a lone lead byte must not yield a rune yet")
	assert.False(t, s.Exhausted(), "a pending partial sequence is not exhausted")

	s.Assign(b[1:2], "utf-8")
	_, ok = s.Next()
	assert.False(t, ok)

	s.Assign(b[2:3], "utf-8")
	r, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, '日', r)
}

func TestScannerPartialSequenceByteAtATime(t *testing.T) {
	s := NewScanner()
	want := []rune("a日b€c")
	var got []rune
	for _, b := range []byte("a日b€c") {
		s.Assign([]byte{b}, "utf-8")
		for {
			r, ok := s.Next()
			if !ok {
				break
			}
			got = append(got, r)
		}
	}
	assert.Equal(t, want, got)
}

func TestScannerPosAndLen(t *testing.T) {
	s := NewScanner()
	s.Assign([]byte("ab"), "utf-8")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.Pos())
	s.Next()
	assert.Equal(t, 1, s.Pos())
}

func TestScannerEncodingLabelRetained(t *testing.T) {
	s := NewScanner()
	s.Assign([]byte("x"), "shift_jis")
	assert.Equal(t, "shift_jis", s.Encoding())
}
