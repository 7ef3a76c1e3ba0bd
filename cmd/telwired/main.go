package main

import (
	"flag"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/telwire/telwire/internal/config"
)

var (
	addr        = flag.String("addr", getEnvDefault("TELWIRED_ADDR", ""), "address on which to listen (overrides config)")
	configFile  = flag.String("config", getEnvDefault("TELWIRED_CONFIG", ""), "path to a YAML config file")
	logLevel    = flag.String("log-level", getEnvDefault("TELWIRED_LOG_LEVEL", ""), "log level (overrides config)")
	metricsAddr = flag.String("metrics-addr", getEnvDefault("TELWIRED_METRICS_ADDR", ""), "address on which to serve metrics (overrides config)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Fatal().Err(err).Send()
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	logger = logger.Level(level)

	metrics := NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", metrics.Handler())
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	defer l.Close()

	logger.Info().Str("addr", cfg.Addr).Msg("started")

	for {
		conn, err := l.Accept()
		if err != nil {
			logger.Error().Err(err).Msg("error accepting connection")
			continue
		}
		go newSession(conn, cfg, metrics).runForever()
	}
}

func getEnvDefault(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}
