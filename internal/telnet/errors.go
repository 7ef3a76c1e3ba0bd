package telnet

import "errors"

// ErrNotNegotiation is returned when serializing a Negotiation whose
// Cmd is not one of WILL, WONT, DO, or DONT.
var ErrNotNegotiation = errors.New("telnet: negotiation command must be WILL, WONT, DO, or DONT")

// A DecodeError reports a known-option subnegotiation payload that does
// not have its required shape.
type DecodeError struct {
	Opt Option
	msg string
}

func (e *DecodeError) Error() string { return "telnet: " + e.msg }

var (
	ErrWindowSizeLength = &DecodeError{Opt: NAWS, msg: "incorrect number of bytes for NAWS subnegotiation"}
	ErrTerminalTypeVerb = &DecodeError{Opt: TerminalType, msg: "expected IS or SEND in terminal-type subnegotiation"}
)
