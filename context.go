package tff

// Context is the external dispatch target a Parser drives: a collaborator
// that assigns/iterates a byte chunk and then receives one dispatch call
// per recognized unit. The Parser
// holds a non-owning handle to it; the Context must outlive the Parser's use
// of it. Every dispatch method may return an error, which aborts the current
// Parse call and propagates to its caller (see Parser.Parse); the FSM state
// at the failing code point is preserved so the next Parse call resumes
// exactly where this one stopped.
//
// A Context owns the Scanner that decodes its assigned chunk into code
// points; BaseContext embeds one so implementers get Assign/Next for free.
type Context interface {
	// Assign binds the next chunk of raw bytes to the Context's Scanner.
	Assign(data []byte, encoding string)

	// Next pulls the next decoded code point from the Context's Scanner.
	// ok is false once the chunk is exhausted.
	Next() (cp rune, ok bool)

	// DispatchChar fires for a GROUND printable/control code point, and for
	// DEL (0x7F) and other pass-through bytes inside most non-ground
	// states.
	DispatchChar(cp rune) error

	// DispatchInvalid fires for any ill-formed sequence; seq reproduces the
	// rejected code points verbatim (possibly including U+FFFD) so a
	// downstream handler can log or replay them.
	DispatchInvalid(seq []rune) error

	// DispatchEsc fires when ESC [intermediates] final completes, with
	// final in 0x30-0x7E.
	DispatchEsc(intermediates []rune, final rune) error

	// DispatchCSI fires when ESC [ parameters intermediates final
	// completes, with final in 0x40-0x7E.
	DispatchCSI(params []rune, intermediates []rune, final rune) error

	// DispatchControlString fires when an OSC/DCS/SOS/PM/APC sequence is
	// terminated by BEL or ST. prefix is the introducer code point (']'
	// for OSC, 'P'/'X'/'^'/'_' for DCS/SOS/PM/APC); payload is the
	// collected body.
	DispatchControlString(prefix rune, payload []rune) error

	// DispatchSS2 fires when ESC N final completes.
	DispatchSS2(final rune) error

	// DispatchSS3 fires when ESC O final completes.
	DispatchSS3(final rune) error
}

// BaseContext embeds a Scanner, giving any struct that embeds BaseContext
// the Assign/Next half of the Context interface for free. Combine it with
// NoopContext, or with your own dispatch methods, to build a Context.
type BaseContext struct {
	Scanner
}

// NoopContext is a Context that discards every dispatch event. Embed it in
// a custom Context to avoid implementing methods you don't care about.
type NoopContext struct {
	BaseContext
}

var _ Context = (*NoopContext)(nil)

func (*NoopContext) DispatchChar(cp rune) error                                 { return nil }
func (*NoopContext) DispatchInvalid(seq []rune) error                           { return nil }
func (*NoopContext) DispatchEsc(intermediates []rune, final rune) error         { return nil }
func (*NoopContext) DispatchCSI(params, intermediates []rune, final rune) error { return nil }
func (*NoopContext) DispatchControlString(prefix rune, payload []rune) error    { return nil }
func (*NoopContext) DispatchSS2(final rune) error                               { return nil }
func (*NoopContext) DispatchSS3(final rune) error                               { return nil }
