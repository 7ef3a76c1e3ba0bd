package telnet

// A Parser extracts Telnet events from a receive buffer. NextEvent is a
// pure function of the buffer contents; the Parser itself carries no
// state between calls beyond its settings, so a partial frame costs
// nothing to retry once more bytes arrive.
type Parser struct {
	// Translate drops NUL bytes that arrive in data, treating them as
	// the NVT padding that follows a carriage return rather than as
	// payload.
	Translate bool
}

// NewParser returns a Parser with translation enabled.
func NewParser() *Parser {
	return &Parser{Translate: true}
}

type parseState int

const (
	parseNull parseState = 0 + iota
	parseData
	parseNegotiation
	parseSubnegotiation
)

// NextEvent scans buf for its first complete event. It returns the
// event and the number of bytes that produced it, which the caller must
// consume from the head of buf. When buf does not yet hold a complete
// event it returns (nil, 0) and the caller should retry with more
// bytes.
//
// Data events end eagerly: exhausting buf outside of a command frame
// emits the bytes scanned so far, and an IAC ends the data event at the
// byte before it, leaving the IAC for the next call. Escaped IACs (IAC
// IAC) collapse to a single 0xff in data and in subnegotiation
// payloads.
func (p *Parser) NextEvent(buf []byte) (Event, int) {
	var (
		state parseState
		data  []byte
		cmd   Command
		opt   Option
		seen  bool
		iac   bool
		n     int
	)

	for _, b := range buf {
		n++

		if b == byte(IAC) {
			if iac {
				iac = false
			} else {
				iac = true
				continue
			}
		}

		switch state {
		case parseNull:
			if iac {
				cmd = Command(b)
				switch cmd {
				case WILL, WONT, DO, DONT:
					state = parseNegotiation
				case SB:
					state = parseSubnegotiation
				default:
					return cmd, n
				}
			} else {
				state = parseData
				data = append(data, b)
				if n == len(buf) {
					return Data(data), n
				}
			}
		case parseNegotiation:
			return Negotiation{Cmd: cmd, Opt: Option(b)}, n
		case parseSubnegotiation:
			switch {
			case !seen:
				opt = Option(b)
				seen = true
			case iac && b == byte(SE):
				return Subnegotiation{Opt: opt, Data: data}, n
			default:
				data = append(data, b)
			}
		case parseData:
			if iac {
				// Unconsume the IAC and the byte after it; they open
				// the next frame.
				n -= 2
			} else if !(p.Translate && b == 0) {
				data = append(data, b)
			}
			if iac || n == len(buf) {
				return Data(data), n
			}
		}

		iac = false
	}
	return nil, 0
}
