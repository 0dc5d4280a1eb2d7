package tff

import (
	"fmt"
	"sync"
)

// Byte-range constants named after the control functions they introduce,
// used throughout the state transition methods below.
const (
	codeESC       = rune(0x1B)
	codeBracket   = rune(0x5B) // '['
	codeBell      = rune(0x07)
	codeBackslash = rune(0x5C) // '\\', the ST (String Terminator) final byte
	codeCAN       = rune(0x18)
	codeSUB       = rune(0x1A)
	codeDEL       = rune(0x7F)
)

// Parser drives an 11-state finite state machine over a stream of decoded
// code points, recognizing C0/C1 control functions, ESC sequences, CSI
// sequences, and OSC/DCS/SOS/PM/APC control strings, and reporting each
// recognized unit to a Context. A Parser carries no state of its own beyond
// the FSM state and the two accumulation buffers (pbytes, ibytes); it does
// not own the code points it reports and does not buffer whole sequences
// beyond what dispatch needs.
//
// A Parser is safe to resume across Parse calls at an arbitrary byte
// boundary, including mid-UTF-8-sequence and mid-escape-sequence: state,
// pbytes and ibytes are the entire parser-side continuation, and the bytes
// of a UTF-8 sequence split across chunks are carried by the Context's
// Scanner. It is also safe for
// concurrent use; Parse serializes internally.
type Parser struct {
	state  State
	pbytes []rune
	ibytes []rune
	ctx    Context

	mu sync.Mutex
}

// NewParser creates a Parser in the GROUND state with no Context assigned.
// Call Init before the first Parse.
func NewParser() *Parser {
	return &Parser{state: StateGround}
}

// Init assigns the Context this Parser will drive. It may be called again
// later to redirect an already-running Parser to a new Context; doing so
// does not reset the FSM state.
func (p *Parser) Init(ctx Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctx = ctx
}

// State returns the parser's current FSM state.
func (p *Parser) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// StateIsESC reports whether the parser is waiting on the byte following a
// bare ESC (0x1B), i.e. has not yet determined whether this is a CSI, OSC,
// control string, SS2/SS3, or a plain ESC F sequence.
func (p *Parser) StateIsESC() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateEscape
}

// Reset forces the parser back to GROUND and discards any in-progress
// sequence. It does not touch the Context.
func (p *Parser) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateGround
	p.pbytes = p.pbytes[:0]
	p.ibytes = p.ibytes[:0]
}

// Parse assigns data to the Context's Scanner and drives the FSM over every
// decoded code point, dispatching to the Context as each unit completes. It
// returns the first error a dispatch method returns, unwrapped. Parse stops
// at the failing code point: the rest of data is not decoded, and the FSM
// keeps the state and buffers that step left behind, so a later Parse call
// continues from that state.
func (p *Parser) Parse(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx == nil {
		return fmt.Errorf("tff: Parser.Parse called before Init")
	}

	p.ctx.Assign(data, "utf-8")
	for {
		cp, ok := p.ctx.Next()
		if !ok {
			return nil
		}
		if err := p.step(cp); err != nil {
			return err
		}
	}
}

// step advances the FSM by exactly one code point.
func (p *Parser) step(c rune) error {
	switch p.state {
	case StateGround:
		return p.stepGround(c)
	case StateEscape:
		return p.stepEscape(c)
	case StateEscapeIntermediate:
		return p.stepEscapeIntermediate(c)
	case StateCSIParameter:
		return p.stepCSIParameter(c)
	case StateCSIIntermediate:
		return p.stepCSIIntermediate(c)
	case StateSS2:
		return p.stepSS2(c)
	case StateSS3:
		return p.stepSS3(c)
	case StateOSC:
		return p.stepOSC(c)
	case StateOSCEscape:
		return p.stepOSCEscape(c)
	case StateStr:
		return p.stepStr(c)
	case StateStrEscape:
		return p.stepStrEscape(c)
	default:
		p.state = StateGround
		return nil
	}
}

func (p *Parser) stepGround(c rune) error {
	if c == codeESC {
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	}
	return p.ctx.DispatchChar(c)
}

// stepEscape handles the code point immediately following a bare ESC:
// either it selects one of the multi-byte introducers (CSI, OSC, SS2, SS3,
// a control string), or it is an intermediate/final byte of a two-character
// "independent escape sequence" (ESC F) or an ISO-2022 designation
// sequence (ESC I...I F).
func (p *Parser) stepEscape(c rune) error {
	switch {
	case c == codeBracket: // '[' -> CSI
		p.pbytes = p.pbytes[:0]
		p.state = StateCSIParameter
		return nil
	case c == 0x5D: // ']' -> OSC
		p.pbytes = append(p.pbytes[:0], c)
		p.state = StateOSC
		return nil
	case c == 0x4E: // 'N' -> SS2
		p.state = StateSS2
		return nil
	case c == 0x4F: // 'O' -> SS3
		p.state = StateSS3
		return nil
	case c == 0x50 || c == 0x58 || c == 0x5E || c == 0x5F: // P/X/^/_ -> DCS/SOS/PM/APC
		p.pbytes = append(p.pbytes[:0], c)
		p.state = StateStr
		return nil
	case c == codeESC:
		if err := p.ctx.DispatchInvalid([]rune{codeESC}); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid([]rune{codeESC}); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	case c < 0x20:
		return p.ctx.DispatchChar(c)
	case c <= 0x2F: // SP to /
		p.ibytes = append(p.ibytes, c)
		p.state = StateEscapeIntermediate
		return nil
	case c <= 0x7E: // 0 to ~, final byte
		err := p.ctx.DispatchEsc(cloneRunes(p.ibytes), c)
		p.state = StateGround
		return err
	case c == codeDEL:
		return p.ctx.DispatchChar(c)
	default: // > 0x7E
		err := p.ctx.DispatchInvalid([]rune{codeESC, c})
		p.state = StateGround
		return err
	}
}

func (p *Parser) stepEscapeIntermediate(c rune) error {
	switch {
	case c == codeDEL:
		return p.ctx.DispatchChar(c)
	case c > 0x7E:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	case c >= 0x30: // 0 to ~, final byte
		err := p.ctx.DispatchEsc(cloneRunes(p.ibytes), c)
		p.state = StateGround
		return err
	case c >= 0x20: // SP to /
		p.ibytes = append(p.ibytes, c)
		return nil
	case c == codeESC:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.ibytes)); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.ibytes)); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	default: // other C0 control
		return p.ctx.DispatchChar(c)
	}
}

func (p *Parser) stepCSIParameter(c rune) error {
	switch {
	case c == codeDEL:
		return p.ctx.DispatchChar(c)
	case c > 0x7E:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes, []rune{c}))
		p.state = StateGround
		return err
	case c >= 0x40: // '@' to '~', final byte
		err := p.ctx.DispatchCSI(cloneRunes(p.pbytes), nil, c)
		p.state = StateGround
		return err
	case c >= 0x30: // '0' to '?', parameter byte
		p.pbytes = append(p.pbytes, c)
		return nil
	case c >= 0x20: // SP to '/', intermediate byte
		p.ibytes = append(p.ibytes[:0], c)
		p.state = StateCSIIntermediate
		return nil
	case c == codeESC:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes)); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes)); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	default: // other C0 control
		return p.ctx.DispatchChar(c)
	}
}

func (p *Parser) stepCSIIntermediate(c rune) error {
	switch {
	case c == codeDEL:
		return p.ctx.DispatchChar(c)
	case c > 0x7E:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	case c >= 0x40: // '@' to '~', final byte
		err := p.ctx.DispatchCSI(cloneRunes(p.pbytes), cloneRunes(p.ibytes), c)
		p.state = StateGround
		return err
	case c >= 0x30: // parameter byte after an intermediate: malformed
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	case c >= 0x20: // SP to '/', intermediate byte
		p.ibytes = append(p.ibytes, c)
		return nil
	case c == codeESC:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes, p.ibytes)); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC, codeBracket}, p.pbytes, p.ibytes)); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	default: // other C0 control
		return p.ctx.DispatchChar(c)
	}
}

// stepOSC and stepStr both accumulate a control string's payload into
// ibytes, but differ in whether BEL (0x07) terminates the string: OSC
// accepts BEL as an alternative to ST (ESC \), control strings proper
// (DCS/SOS/PM/APC) do not.

func (p *Parser) stepOSC(c rune) error {
	switch {
	case c == codeBell:
		err := p.ctx.DispatchControlString(p.pbytes[0], cloneRunes(p.ibytes))
		p.state = StateGround
		return err
	case c < 0x08:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	case c < 0x0E: // 0x08-0x0D, payload
		p.ibytes = append(p.ibytes, c)
		return nil
	case c == codeESC:
		p.state = StateOSCEscape
		return nil
	case c < 0x20:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	default: // >= 0x20, including the 0x80-0xFF range: payload
		p.ibytes = append(p.ibytes, c)
		return nil
	}
}

func (p *Parser) stepStr(c rune) error {
	switch {
	case c < 0x08:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	case c < 0x0E: // 0x08-0x0D, payload
		p.ibytes = append(p.ibytes, c)
		return nil
	case c == codeESC:
		p.state = StateStrEscape
		return nil
	case c < 0x20:
		err := p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{c}))
		p.state = StateGround
		return err
	default: // >= 0x20, including the 0x80-0xFF range: payload
		p.ibytes = append(p.ibytes, c)
		return nil
	}
}

func (p *Parser) stepOSCEscape(c rune) error {
	p.state = StateGround
	if c == codeBackslash {
		return p.ctx.DispatchControlString(p.pbytes[0], cloneRunes(p.ibytes))
	}
	return p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{codeESC, c}))
}

func (p *Parser) stepStrEscape(c rune) error {
	p.state = StateGround
	if c == codeBackslash {
		return p.ctx.DispatchControlString(p.pbytes[0], cloneRunes(p.ibytes))
	}
	return p.ctx.DispatchInvalid(joinRunes([]rune{codeESC}, p.pbytes, p.ibytes, []rune{codeESC, c}))
}

// stepSS2 and stepSS3 are near-identical single shots: one code point
// follows the introducer and completes the dispatch. The Context receives
// the matching introducer (0x4E for SS2, 0x4F for SS3) in the
// invalid-dispatch case.
func (p *Parser) stepSS2(c rune) error {
	switch {
	case c == codeESC:
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4E}); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4E}); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	case c < 0x20:
		return p.ctx.DispatchChar(c)
	case c < codeDEL:
		err := p.ctx.DispatchSS2(c)
		p.state = StateGround
		return err
	default: // >= DEL
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4E}); err != nil {
			return err
		}
		return p.ctx.DispatchChar(c)
	}
}

func (p *Parser) stepSS3(c rune) error {
	switch {
	case c == codeESC:
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4F}); err != nil {
			return err
		}
		p.ibytes = p.ibytes[:0]
		p.state = StateEscape
		return nil
	case c == codeCAN || c == codeSUB:
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4F}); err != nil {
			return err
		}
		p.state = StateGround
		return p.ctx.DispatchChar(c)
	case c < 0x20:
		return p.ctx.DispatchChar(c)
	case c < codeDEL:
		err := p.ctx.DispatchSS3(c)
		p.state = StateGround
		return err
	default: // >= DEL
		if err := p.ctx.DispatchInvalid([]rune{codeESC, 0x4F}); err != nil {
			return err
		}
		return p.ctx.DispatchChar(c)
	}
}

func cloneRunes(r []rune) []rune {
	if len(r) == 0 {
		return nil
	}
	out := make([]rune, len(r))
	copy(out, r)
	return out
}

func joinRunes(parts ...[]rune) []rune {
	n := 0
	for _, part := range parts {
		n += len(part)
	}
	out := make([]rune, 0, n)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
