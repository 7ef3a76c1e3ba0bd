package telnet

import "fmt"

// Option is a single-byte Telnet option code. Every byte value is a
// valid Option; the named constants cover the options this package can
// give a typed meaning to.
type Option byte

const (
	TransmitBinary    Option = 0  // RFC 856
	Echo              Option = 1  // RFC 857
	Reconnection      Option = 2  // NIC 15391
	SuppressGoAhead   Option = 3  // RFC 858
	ApproxMessageSize Option = 4  // NIC 15393
	Status            Option = 5  // RFC 859
	TimingMark        Option = 6  // RFC 860
	Logout            Option = 18 // RFC 727
	TerminalType      Option = 24 // RFC 1091
	NAWS              Option = 31 // RFC 1073
	LineMode          Option = 34 // RFC 1184
)

var optionNames = map[Option]string{
	TransmitBinary:    "TransmitBinary",
	Echo:              "Echo",
	Reconnection:      "Reconnection",
	SuppressGoAhead:   "SuppressGoAhead",
	ApproxMessageSize: "ApproxMessageSize",
	Status:            "Status",
	TimingMark:        "TimingMark",
	Logout:            "Logout",
	TerminalType:      "TerminalType",
	NAWS:              "NAWS",
	LineMode:          "LineMode",
}

// Known reports whether o is an option this package has a name for.
func (o Option) Known() bool {
	_, ok := optionNames[o]
	return ok
}

// String returns the option mnemonic, or the numeric form for codes
// without one.
func (o Option) String() string {
	if s, ok := optionNames[o]; ok {
		return s
	}
	return fmt.Sprintf("0x%02x", byte(o))
}
