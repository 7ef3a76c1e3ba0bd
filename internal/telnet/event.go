package telnet

import (
	"golang.org/x/text/transform"

	"github.com/telwire/telwire/internal/nvt"
)

// An Event is one decoded unit of the Telnet stream: a run of in-band
// data, a bare command, an option negotiation, or a subnegotiation
// frame. The four implementations are Data, Command, Negotiation, and
// Subnegotiation.
type Event interface {
	// encode returns the wire bytes for the event.
	encode() ([]byte, error)
}

// Data is a run of in-band payload bytes.
type Data []byte

func (d Data) encode() ([]byte, error) {
	b, _, err := transform.Bytes(nvt.UnixToNVT(), d)
	return b, err
}

func (c Command) encode() ([]byte, error) {
	return []byte{byte(IAC), byte(c)}, nil
}

// A Negotiation pairs one of WILL, WONT, DO, or DONT with an option.
type Negotiation struct {
	Cmd Command
	Opt Option
}

func (n Negotiation) encode() ([]byte, error) {
	switch n.Cmd {
	case WILL, WONT, DO, DONT:
	default:
		return nil, ErrNotNegotiation
	}
	// The option byte is never IAC-doubled on the wire.
	return []byte{byte(IAC), byte(n.Cmd), byte(n.Opt)}, nil
}

// Accept returns the agreeing response to n: WILL for DO, DO for WILL.
// A request to stop (WONT, DONT) can only be acknowledged, so Accept
// and Reject answer it the same way.
func (n Negotiation) Accept() Negotiation {
	switch n.Cmd {
	case DO:
		return Negotiation{Cmd: WILL, Opt: n.Opt}
	case WILL:
		return Negotiation{Cmd: DO, Opt: n.Opt}
	case DONT:
		return Negotiation{Cmd: WONT, Opt: n.Opt}
	case WONT:
		return Negotiation{Cmd: DONT, Opt: n.Opt}
	}
	return n
}

// Reject returns the refusing response to n: WONT for DO, DONT for
// WILL.
func (n Negotiation) Reject() Negotiation {
	switch n.Cmd {
	case DO:
		return Negotiation{Cmd: WONT, Opt: n.Opt}
	case WILL:
		return Negotiation{Cmd: DONT, Opt: n.Opt}
	case DONT:
		return Negotiation{Cmd: WONT, Opt: n.Opt}
	case WONT:
		return Negotiation{Cmd: DONT, Opt: n.Opt}
	}
	return n
}

// A Subnegotiation carries the raw payload exchanged for an option
// between IAC SB and IAC SE.
type Subnegotiation struct {
	Opt  Option
	Data []byte
}

func (s Subnegotiation) encode() ([]byte, error) {
	payload, _, err := transform.Bytes(nvt.EscapeIACs(), s.Data)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(payload)+5)
	buf = append(buf, byte(IAC), byte(SB), byte(s.Opt))
	buf = append(buf, payload...)
	buf = append(buf, byte(IAC), byte(SE))
	return buf, nil
}
