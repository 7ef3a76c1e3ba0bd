package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEvent(t *testing.T) {
	var tests = []struct {
		buf   []byte
		event Event
		n     int
	}{
		{nil, nil, 0},
		{[]byte{byte(IAC)}, nil, 0},
		{[]byte{byte(IAC), byte(WILL)}, nil, 0},
		{[]byte{'a', byte(IAC)}, nil, 0},
		{[]byte{byte(IAC), byte(SB), byte(NAWS), 0x00}, nil, 0},
		{[]byte("foo"), Data("foo"), 3},
		{[]byte{0xde, 0xad, 0xbe, 0xef, 0x08}, Data{0xde, 0xad, 0xbe, 0xef, 0x08}, 5},
		{[]byte{byte(IAC), byte(IAC)}, Data{0xff}, 2},
		{[]byte{byte(IAC), byte(IAC), 'a'}, Data{0xff, 'a'}, 3},
		{[]byte{'h', byte(IAC), byte(NOP), 'i'}, Data("h"), 1},
		{[]byte{'h', byte(IAC), byte(IAC), 'i'}, Data{'h', 0xff, 'i'}, 4},
		{[]byte{'a', 0x00, 'b'}, Data("ab"), 3},
		{[]byte{0x00, 'a'}, Data{0x00, 'a'}, 2},
		{[]byte{byte(IAC), byte(NOP)}, NOP, 2},
		{[]byte{byte(IAC), byte(AYT), 'a'}, AYT, 2},
		{[]byte{byte(IAC), 0x42}, Command(0x42), 2},
		{[]byte{byte(IAC), byte(WILL), byte(LineMode), 0x42}, Negotiation{Cmd: WILL, Opt: LineMode}, 3},
		{[]byte{byte(IAC), byte(DONT), byte(Echo)}, Negotiation{Cmd: DONT, Opt: Echo}, 3},
		{[]byte{byte(IAC), byte(SB), byte(NAWS), 0x00, 0xca, 0x00, 0xfe, byte(IAC), byte(SE)},
			Subnegotiation{Opt: NAWS, Data: []byte{0x00, 0xca, 0x00, 0xfe}}, 9},
		{[]byte{byte(IAC), byte(SB), byte(Echo), byte(IAC), byte(IAC), byte(IAC), byte(SE)},
			Subnegotiation{Opt: Echo, Data: []byte{0xff}}, 7},
	}
	for i, test := range tests {
		ev, n := NewParser().NextEvent(test.buf)
		assert.Equal(t, test.event, ev, i)
		assert.Equal(t, test.n, n, i)
	}
}

func TestNextEventSequence(t *testing.T) {
	buf := []byte{byte(IAC), byte(WILL), byte(LineMode), 0x42}
	p := NewParser()

	ev, n := p.NextEvent(buf)
	require.Equal(t, Negotiation{Cmd: WILL, Opt: LineMode}, ev)
	require.Equal(t, 3, n)
	buf = buf[n:]

	ev, n = p.NextEvent(buf)
	require.Equal(t, Data{0x42}, ev)
	require.Equal(t, 1, n)
	buf = buf[n:]

	ev, n = p.NextEvent(buf)
	require.Nil(t, ev)
	require.Zero(t, n)
}

func TestNextEventResume(t *testing.T) {
	p := NewParser()

	buf := []byte{byte(IAC), byte(WILL)}
	ev, n := p.NextEvent(buf)
	require.Nil(t, ev)
	require.Zero(t, n)

	buf = append(buf, byte(Echo))
	ev, n = p.NextEvent(buf)
	require.Equal(t, Negotiation{Cmd: WILL, Opt: Echo}, ev)
	require.Equal(t, 3, n)
}

func TestNextEventNoTranslate(t *testing.T) {
	p := &Parser{}
	ev, n := p.NextEvent([]byte{'a', 0x00, 'b'})
	require.Equal(t, Data{'a', 0x00, 'b'}, ev)
	require.Equal(t, 3, n)
}

func TestNextEventSubnegotiationKeepsNUL(t *testing.T) {
	buf := []byte{byte(IAC), byte(SB), byte(NAWS), 0x00, 0x50, 0x00, 0x18, byte(IAC), byte(SE)}
	ev, n := NewParser().NextEvent(buf)
	require.Equal(t, Subnegotiation{Opt: NAWS, Data: []byte{0x00, 0x50, 0x00, 0x18}}, ev)
	require.Equal(t, len(buf), n)
}
