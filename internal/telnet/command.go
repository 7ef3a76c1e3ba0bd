package telnet

import "fmt"

// Command is a single-byte Telnet command, carried on the wire as IAC
// followed by the command byte.
type Command byte

// RFC 854
const (
	SE   Command = 240 + iota // f0
	NOP                       // f1
	DM                        // f2
	BRK                       // f3
	IP                        // f4
	AO                        // f5
	AYT                       // f6
	EC                        // f7
	EL                        // f8
	GA                        // f9
	SB                        // fa
	WILL                      // fb
	WONT                      // fc
	DO                        // fd
	DONT                      // fe
	IAC                       // ff
)

var commandNames = map[Command]string{
	SE:   "SE",
	NOP:  "NOP",
	DM:   "DM",
	BRK:  "BRK",
	IP:   "IP",
	AO:   "AO",
	AYT:  "AYT",
	EC:   "EC",
	EL:   "EL",
	GA:   "GA",
	SB:   "SB",
	WILL: "WILL",
	WONT: "WONT",
	DO:   "DO",
	DONT: "DONT",
	IAC:  "IAC",
}

// Known reports whether c is one of the commands named by RFC 854.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}

// String returns the RFC 854 mnemonic, or the numeric form for bytes
// outside the named range.
func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("0x%02x", byte(c))
}
