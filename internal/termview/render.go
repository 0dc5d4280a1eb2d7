package termview

import "github.com/saitoha/tff"

// RenderPlain parses input through a fresh Parser/View pair sized
// width x height and returns the plain-text rendering.
func RenderPlain(input []byte, width, height int) (string, error) {
	v := New(width, height)
	p := tff.NewParser()
	p.Init(v)
	if err := p.Parse(input); err != nil {
		return "", err
	}
	return v.PlainText(), nil
}

// RenderStyled is RenderPlain but re-emits SGR sequences at style changes.
func RenderStyled(input []byte, width, height int) (string, error) {
	v := New(width, height)
	p := tff.NewParser()
	p.Init(v)
	if err := p.Parse(input); err != nil {
		return "", err
	}
	return v.StyledText(), nil
}
