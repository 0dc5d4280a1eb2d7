package tff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopContextImplementsContext(t *testing.T) {
	var _ Context = (*NoopContext)(nil)
}

func TestNoopContextDispatchMethodsDoNothing(t *testing.T) {
	c := &NoopContext{}
	assert.NoError(t, c.DispatchChar('x'))
	assert.NoError(t, c.DispatchInvalid([]rune{'a', 'b'}))
	assert.NoError(t, c.DispatchEsc(nil, 'D'))
	assert.NoError(t, c.DispatchCSI(nil, nil, 'm'))
	assert.NoError(t, c.DispatchControlString(']', []rune("title")))
	assert.NoError(t, c.DispatchSS2('A'))
	assert.NoError(t, c.DispatchSS3('A'))
}

func TestBaseContextProvidesScannerMethods(t *testing.T) {
	c := &NoopContext{}
	c.Assign([]byte("hi"), "utf-8")
	r, ok := c.Next()
	assert.True(t, ok)
	assert.Equal(t, 'h', r)
}

// recordingContext embeds NoopContext and overrides a subset of methods,
// demonstrating that a custom Context needs only to implement the events
// it cares about.
type recordingContext struct {
	NoopContext
	chars []rune
}

func (c *recordingContext) DispatchChar(cp rune) error {
	c.chars = append(c.chars, cp)
	return nil
}

func TestEmbeddingNoopContextForPartialImplementation(t *testing.T) {
	c := &recordingContext{}
	var _ Context = c

	p := NewParser()
	p.Init(c)
	assert.NoError(t, p.Parse([]byte("ab\x1b[31mc")))
	assert.Equal(t, []rune{'a', 'b', 'c'}, c.chars)
}
