package main

import (
	"context"
	"net"

	"github.com/rs/zerolog"
	"github.com/telwire/telwire/internal/config"
	"github.com/telwire/telwire/internal/event"
	"github.com/telwire/telwire/internal/telnet"
)

type session struct {
	conn       net.Conn
	stream     *telnet.Stream
	dispatcher event.Dispatcher
	logger     zerolog.Logger
	welcome    string
	metrics    *Metrics
}

func newSession(conn net.Conn, cfg *config.Config, metrics *Metrics) *session {
	s := &session{
		conn:       conn,
		stream:     telnet.NewStream(conn),
		dispatcher: event.NewDispatcher(),
		logger: logger.With().
			Str("peer", conn.RemoteAddr().String()).
			Logger(),
		welcome: cfg.Welcome,
		metrics: metrics,
	}
	s.stream.SetTranslate(cfg.Translate)
	LogHandler{Logger: s.logger}.Register(s.dispatcher)
	metrics.Register(s.dispatcher)
	return s
}

func (s *session) runForever() {
	defer s.conn.Close()
	s.logger.Debug().Msg("connected")
	defer s.logger.Debug().Msg("disconnected")

	s.metrics.sessionsTotal.Inc()
	s.metrics.sessionsActive.Inc()
	defer s.metrics.sessionsActive.Dec()

	if err := s.negotiateOptions(); err != nil {
		s.logger.Error().Err(err).Msg("error negotiating options")
		return
	}
	if s.welcome != "" {
		if err := s.stream.SendText(s.welcome); err != nil {
			s.logger.Error().Err(err).Msg("error sending welcome")
			return
		}
	}

	ctx := context.Background()
	for ev, err := range s.stream.Events() {
		if err != nil {
			s.logger.Error().Err(err).Msg("error reading event")
			return
		}
		if err := s.handleEvent(ctx, ev); err != nil {
			s.logger.Error().Err(err).Msg("error handling event")
			return
		}
	}
}

// Character-at-a-time mode: we echo, the client does not.
func (s *session) negotiateOptions() error {
	if err := s.stream.SendWill(telnet.Echo); err != nil {
		return err
	}
	if err := s.stream.SendWill(telnet.SuppressGoAhead); err != nil {
		return err
	}
	if err := s.stream.SendDo(telnet.TerminalType); err != nil {
		return err
	}
	if err := s.stream.SendSubnegotiation(telnet.TerminalTypeRequest{}); err != nil {
		return err
	}
	return s.stream.SendDo(telnet.NAWS)
}

func (s *session) handleEvent(ctx context.Context, ev telnet.Event) error {
	switch t := ev.(type) {
	case telnet.Data:
		if err := s.dispatcher.Dispatch(ctx, event.Event{Name: eventData, Data: t}); err != nil {
			return err
		}
		return s.echo(t)
	case telnet.Negotiation:
		if err := s.dispatcher.Dispatch(ctx, event.Event{Name: eventNegotiation, Data: t}); err != nil {
			return err
		}
		return s.respond(t)
	case telnet.Subnegotiation:
		data, err := telnet.DecodeSubnegotiation(t)
		if err != nil {
			s.logger.Warn().Err(err).Stringer("option", t.Opt).Msg("dropping malformed subnegotiation")
			return nil
		}
		return s.dispatcher.Dispatch(ctx, event.Event{Name: eventSubnegotiation, Data: data})
	case telnet.Command:
		return s.dispatcher.Dispatch(ctx, event.Event{Name: eventCommand, Data: t})
	}
	return nil
}

// echo sends back what a character-mode user expects to see: printable
// bytes as themselves, a fresh line for CR. Anything else stays in the
// event log.
func (s *session) echo(data telnet.Data) error {
	buf := make(telnet.Data, 0, len(data))
	for _, b := range data {
		switch {
		case b == '\r':
			buf = append(buf, '\n')
		case 0x20 <= b && b < 0x7f:
			buf = append(buf, b)
		}
	}
	if len(buf) == 0 {
		return nil
	}
	return s.stream.SendData(buf)
}

// respond answers negotiation requests. Replies to the options offered
// in negotiateOptions are acknowledgements and need no answer; any
// other request is refused. Refusals themselves are never answered,
// which would loop.
func (s *session) respond(neg telnet.Negotiation) error {
	switch neg.Cmd {
	case telnet.DO:
		if neg.Opt == telnet.Echo || neg.Opt == telnet.SuppressGoAhead {
			return nil
		}
	case telnet.WILL:
		if neg.Opt == telnet.TerminalType || neg.Opt == telnet.NAWS {
			return nil
		}
	case telnet.WONT, telnet.DONT:
		return nil
	}
	return s.stream.SendEvent(neg.Reject())
}
