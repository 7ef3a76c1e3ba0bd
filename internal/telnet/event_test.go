package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEncode(t *testing.T) {
	var tests = []struct {
		event    Event
		expected []byte
	}{
		{Data("foo"), []byte("foo")},
		{Data{'h', 0xff, 'i'}, []byte{'h', 0xff, 0xff, 'i'}},
		{Data("foo\nbar"), []byte("foo\r\nbar")},
		{Data("foo\rbar"), []byte("foo\r\x00bar")},
		{NOP, []byte{0xff, 0xf1}},
		{Command(0x42), []byte{0xff, 0x42}},
		{Negotiation{Cmd: WILL, Opt: Echo}, []byte{0xff, 0xfb, 0x01}},
		{Negotiation{Cmd: DONT, Opt: NAWS}, []byte{0xff, 0xfe, 0x1f}},
		{Negotiation{Cmd: DO, Opt: Option(0xff)}, []byte{0xff, 0xfd, 0xff}},
		{Subnegotiation{Opt: NAWS, Data: []byte{0x00, 0xca, 0x00, 0xfe}},
			[]byte{0xff, 0xfa, 0x1f, 0x00, 0xca, 0x00, 0xfe, 0xff, 0xf0}},
		{Subnegotiation{Opt: Echo, Data: []byte{0xff}},
			[]byte{0xff, 0xfa, 0x01, 0xff, 0xff, 0xff, 0xf0}},
		{Subnegotiation{Opt: Status, Data: []byte("a\nb")},
			[]byte{0xff, 0xfa, 0x05, 'a', '\n', 'b', 0xff, 0xf0}},
	}
	for i, test := range tests {
		actual, err := test.event.encode()
		require.NoError(t, err, i)
		assert.Equal(t, test.expected, actual, i)
	}
}

func TestEncodeInvalidNegotiation(t *testing.T) {
	for i, cmd := range []Command{NOP, SB, SE, IAC, Command(0x42)} {
		_, err := Negotiation{Cmd: cmd, Opt: Echo}.encode()
		require.ErrorIs(t, err, ErrNotNegotiation, i)
	}
}

func TestNegotiationAccept(t *testing.T) {
	var tests = []struct {
		in, out Negotiation
	}{
		{Negotiation{Cmd: DO, Opt: Echo}, Negotiation{Cmd: WILL, Opt: Echo}},
		{Negotiation{Cmd: WILL, Opt: NAWS}, Negotiation{Cmd: DO, Opt: NAWS}},
		{Negotiation{Cmd: DONT, Opt: Echo}, Negotiation{Cmd: WONT, Opt: Echo}},
		{Negotiation{Cmd: WONT, Opt: Echo}, Negotiation{Cmd: DONT, Opt: Echo}},
	}
	for i, test := range tests {
		assert.Equal(t, test.out, test.in.Accept(), i)
	}
}

func TestNegotiationReject(t *testing.T) {
	var tests = []struct {
		in, out Negotiation
	}{
		{Negotiation{Cmd: DO, Opt: Echo}, Negotiation{Cmd: WONT, Opt: Echo}},
		{Negotiation{Cmd: WILL, Opt: NAWS}, Negotiation{Cmd: DONT, Opt: NAWS}},
		{Negotiation{Cmd: DONT, Opt: Echo}, Negotiation{Cmd: WONT, Opt: Echo}},
		{Negotiation{Cmd: WONT, Opt: Echo}, Negotiation{Cmd: DONT, Opt: Echo}},
	}
	for i, test := range tests {
		assert.Equal(t, test.out, test.in.Reject(), i)
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "WILL", WILL.String())
	assert.Equal(t, "IAC", IAC.String())
	assert.Equal(t, "0x42", Command(0x42).String())
	assert.True(t, SE.Known())
	assert.False(t, Command(0x42).Known())
}

func TestOptionString(t *testing.T) {
	assert.Equal(t, "Echo", Echo.String())
	assert.Equal(t, "NAWS", NAWS.String())
	assert.Equal(t, "0x63", Option(99).String())
	assert.True(t, TerminalType.Known())
	assert.False(t, Option(99).Known())
}
