package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/telwire/telwire/internal/telnet"
	"golang.org/x/term"
)

var (
	logLevel = flag.String("log-level", getEnvDefault("TELWIRE_LOG_LEVEL", "warn"), "level for protocol chatter on stderr")
)

var logger = zerolog.New(os.Stderr)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] host:port\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	logger = logger.Level(level)

	if err := run(flag.Arg(0)); err != nil {
		logger.Fatal().Err(err).Send()
	}
}

func run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info().Str("addr", addr).Msg("connected")

	stream := telnet.NewStream(conn)

	stdin := int(os.Stdin.Fd())
	if term.IsTerminal(stdin) {
		oldState, err := term.MakeRaw(stdin)
		if err != nil {
			return err
		}
		defer term.Restore(stdin, oldState)
	}

	go pumpStdin(conn, stream)

	for ev, err := range stream.Events() {
		if err != nil {
			return err
		}
		if err := handleEvent(stream, ev); err != nil {
			return err
		}
	}
	return nil
}

// pumpStdin forwards local input to the remote side. Half-closing the
// connection on stdin EOF lets the remote finish talking before the
// event loop winds down.
func pumpStdin(conn net.Conn, stream *telnet.Stream) {
	buf := make([]byte, 1024)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if err := stream.SendData(buf[:n]); err != nil {
				logger.Error().Err(err).Msg("error sending input")
				return
			}
		}
		if err != nil {
			if tcp, ok := conn.(*net.TCPConn); ok {
				tcp.CloseWrite()
			} else {
				conn.Close()
			}
			return
		}
	}
}

func handleEvent(stream *telnet.Stream, ev telnet.Event) error {
	switch t := ev.(type) {
	case telnet.Data:
		if _, err := os.Stdout.Write(t); err != nil {
			return err
		}
	case telnet.Negotiation:
		return answer(stream, t)
	case telnet.Subnegotiation:
		return answerSubnegotiation(stream, t)
	case telnet.Command:
		logger.Debug().Stringer("command", t).Msg("ignoring command")
	}
	return nil
}

// answer accepts the options the client supports and refuses the rest.
// Refusals themselves are never answered, which would loop.
func answer(stream *telnet.Stream, neg telnet.Negotiation) error {
	switch {
	case neg.Cmd == telnet.DO && neg.Opt == telnet.NAWS:
		if err := stream.SendEvent(neg.Accept()); err != nil {
			return err
		}
		return sendWindowSize(stream)
	case neg.Cmd == telnet.DO && neg.Opt == telnet.TerminalType:
		return stream.SendEvent(neg.Accept())
	case neg.Cmd == telnet.WILL && (neg.Opt == telnet.Echo || neg.Opt == telnet.SuppressGoAhead):
		return stream.SendEvent(neg.Accept())
	case neg.Cmd == telnet.WONT, neg.Cmd == telnet.DONT:
		logger.Debug().Stringer("command", neg.Cmd).Stringer("option", neg.Opt).Msg("peer declined option")
		return nil
	default:
		logger.Debug().Stringer("command", neg.Cmd).Stringer("option", neg.Opt).Msg("refusing option")
		return stream.SendEvent(neg.Reject())
	}
}

func answerSubnegotiation(stream *telnet.Stream, sub telnet.Subnegotiation) error {
	data, err := telnet.DecodeSubnegotiation(sub)
	if err != nil {
		logger.Warn().Err(err).Stringer("option", sub.Opt).Msg("dropping malformed subnegotiation")
		return nil
	}
	switch data.(type) {
	case telnet.TerminalTypeRequest:
		name := os.Getenv("TERM")
		if name == "" {
			name = "unknown"
		}
		return stream.SendSubnegotiation(telnet.TerminalTypeResponse{Name: name})
	default:
		logger.Debug().Stringer("option", sub.Opt).Msg("ignoring subnegotiation")
	}
	return nil
}

func sendWindowSize(stream *telnet.Stream) error {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}
	return stream.SendSubnegotiation(telnet.WindowSize{
		Width:  uint16(width),
		Height: uint16(height),
	})
}

func getEnvDefault(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}
