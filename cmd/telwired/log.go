package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/telwire/telwire/internal/event"
	"github.com/telwire/telwire/internal/telnet"
)

var logger = zerolog.New(os.Stdout)

const (
	eventData           event.Name = "session:data"
	eventCommand        event.Name = "session:command"
	eventNegotiation    event.Name = "session:negotiation"
	eventSubnegotiation event.Name = "session:subnegotiation"
)

type LogHandler struct {
	zerolog.Logger
}

func (h LogHandler) Register(d event.Dispatcher) {
	d.Listen(eventData, h)
	d.Listen(eventCommand, h)
	d.Listen(eventNegotiation, h)
	d.Listen(eventSubnegotiation, h)
}

func (h LogHandler) Listen(_ context.Context, ev event.Event) error {
	log := h.Trace().Str("event", string(ev.Name))
	switch t := ev.Data.(type) {
	case telnet.Data:
		log.Bytes("data", t)
	case telnet.Command:
		log.Stringer("command", t)
	case telnet.Negotiation:
		log.Stringer("command", t.Cmd).Stringer("option", t.Opt)
	case telnet.WindowSize:
		log.Uint16("width", t.Width).Uint16("height", t.Height)
	case telnet.TerminalTypeResponse:
		log.Str("terminal", t.Name)
	case telnet.Subnegotiation:
		log.Stringer("option", t.Opt).Bytes("data", t.Data)
	default:
		log.Any("data", t)
	}
	log.Send()
	return nil
}
