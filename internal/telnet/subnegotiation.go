package telnet

import (
	"encoding/binary"
	"strings"
)

// Terminal-type subnegotiation verbs, RFC 1091.
const (
	ttypeIS   = 0x00
	ttypeSEND = 0x01
)

// SubnegotiationData is a subnegotiation payload in its typed form.
// WindowSize, TerminalTypeRequest, and TerminalTypeResponse cover the
// options this package understands; a raw Subnegotiation is its own
// typed form for every other option.
type SubnegotiationData interface {
	// Unparsed returns the generic wire form of the payload. It never
	// fails.
	Unparsed() Subnegotiation
}

// WindowSize is the NAWS payload: the peer's terminal dimensions in
// character cells.
type WindowSize struct {
	Width, Height uint16
}

func (w WindowSize) Unparsed() Subnegotiation {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data, w.Width)
	binary.BigEndian.PutUint16(data[2:], w.Height)
	return Subnegotiation{Opt: NAWS, Data: data}
}

// TerminalTypeRequest asks the peer to name its terminal.
type TerminalTypeRequest struct{}

func (TerminalTypeRequest) Unparsed() Subnegotiation {
	return Subnegotiation{Opt: TerminalType, Data: []byte{ttypeSEND}}
}

// TerminalTypeResponse names the sender's terminal.
type TerminalTypeResponse struct {
	Name string
}

func (t TerminalTypeResponse) Unparsed() Subnegotiation {
	return Subnegotiation{Opt: TerminalType, Data: append([]byte{ttypeIS}, t.Name...)}
}

func (s Subnegotiation) Unparsed() Subnegotiation { return s }

// DecodeSubnegotiation converts s into its typed form. A NAWS payload
// must be exactly four bytes, big-endian width then height; a
// terminal-type payload must begin with IS or SEND, and any bytes after
// a SEND are ignored. Violations fail with ErrWindowSizeLength or
// ErrTerminalTypeVerb. Options without a typed form decode to s
// unchanged.
func DecodeSubnegotiation(s Subnegotiation) (SubnegotiationData, error) {
	switch s.Opt {
	case NAWS:
		if len(s.Data) != 4 {
			return nil, ErrWindowSizeLength
		}
		return WindowSize{
			Width:  binary.BigEndian.Uint16(s.Data),
			Height: binary.BigEndian.Uint16(s.Data[2:]),
		}, nil
	case TerminalType:
		if len(s.Data) == 0 {
			return nil, ErrTerminalTypeVerb
		}
		switch s.Data[0] {
		case ttypeSEND:
			return TerminalTypeRequest{}, nil
		case ttypeIS:
			return TerminalTypeResponse{Name: strings.ToValidUTF8(string(s.Data[1:]), "�")}, nil
		}
		return nil, ErrTerminalTypeVerb
	}
	return s, nil
}
