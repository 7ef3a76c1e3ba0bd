package telnet

import (
	"bytes"
	"io"
	"iter"
	"sync"
)

const readSize = 4096

// A Stream decodes Telnet events from, and serializes them onto, an
// underlying byte channel. It owns its receive buffer and Parser, so
// only one goroutine may receive at a time. Sends are serialized and
// may come from any goroutine.
type Stream struct {
	rw     io.ReadWriter
	rx     bytes.Buffer
	rbuf   []byte
	parser *Parser
	err    error

	tx sync.Mutex
}

// NewStream wraps rw. Translation of NVT padding is enabled; use
// SetTranslate to change it.
func NewStream(rw io.ReadWriter) *Stream {
	return &Stream{
		rw:     rw,
		rbuf:   make([]byte, readSize),
		parser: NewParser(),
	}
}

// SetTranslate controls whether NUL bytes received in data are dropped.
func (s *Stream) SetTranslate(on bool) {
	s.parser.Translate = on
}

// NextEvent returns the next event from the stream, reading from the
// channel only when the receive buffer holds no complete event. It
// returns io.EOF once the channel is exhausted; any other error is the
// channel's own and leaves the stream unusable. Bytes read alongside an
// error are decoded first, so the error surfaces on a later call.
func (s *Stream) NextEvent() (Event, error) {
	for {
		if ev, n := s.parser.NextEvent(s.rx.Bytes()); ev != nil {
			s.rx.Next(n)
			return ev, nil
		}
		if s.err != nil {
			return nil, s.err
		}
		nr, err := s.rw.Read(s.rbuf)
		s.rx.Write(s.rbuf[:nr])
		if err != nil {
			s.err = err
		} else if nr == 0 {
			s.err = io.EOF
		}
	}
}

// Events returns an iterator over the remaining events of the stream.
// It ends silently at io.EOF; any other error is yielded once with a
// nil event before the iteration ends.
func (s *Stream) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := s.NextEvent()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// SendEvent serializes ev and writes it to the channel in a single
// write. Data payloads pass through the Unix-to-NVT transforms;
// subnegotiation payloads are IAC-escaped only. A write that the
// channel accepts short fails with io.ErrShortWrite.
func (s *Stream) SendEvent(ev Event) error {
	buf, err := ev.encode()
	if err != nil {
		return err
	}
	s.tx.Lock()
	defer s.tx.Unlock()
	n, err := s.rw.Write(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// SendWill offers to begin performing opt.
func (s *Stream) SendWill(opt Option) error {
	return s.SendEvent(Negotiation{Cmd: WILL, Opt: opt})
}

// SendWont refuses to perform opt.
func (s *Stream) SendWont(opt Option) error {
	return s.SendEvent(Negotiation{Cmd: WONT, Opt: opt})
}

// SendDo asks the peer to begin performing opt.
func (s *Stream) SendDo(opt Option) error {
	return s.SendEvent(Negotiation{Cmd: DO, Opt: opt})
}

// SendDont demands the peer stop performing opt.
func (s *Stream) SendDont(opt Option) error {
	return s.SendEvent(Negotiation{Cmd: DONT, Opt: opt})
}

// SendData sends b as in-band data.
func (s *Stream) SendData(b []byte) error {
	return s.SendEvent(Data(b))
}

// SendText sends the text as in-band data.
func (s *Stream) SendText(text string) error {
	return s.SendData([]byte(text))
}

// SendSubnegotiation sends the wire form of sd.
func (s *Stream) SendSubnegotiation(sd SubnegotiationData) error {
	return s.SendEvent(sd.Unparsed())
}
