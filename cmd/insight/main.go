package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"purchase-insight/internal/cfg"
	"purchase-insight/internal/dataset"
	"purchase-insight/internal/metrics"
	"purchase-insight/internal/server"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	// Local .env is optional; settings come from CONFIG_FILE or the environment.
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	m := metrics.New()

	loader := dataset.NewLoader(c.LoadTimeout).WithMetrics(m)
	ds, warnings, err := loader.Load(c.DataSource)
	if err != nil {
		log.Fatal().Err(err).Str("source", c.DataSource).Msg("dataset load failed")
	}
	for _, w := range warnings {
		log.Warn().Int("line", w.Line).Str("reason", w.Reason).Msg("row warning")
	}

	srv := server.New(ds, c, m)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	waitForShutdown(srv)
}

// waitForShutdown blocks until a shutdown signal arrives, then drains the
// server with a timeout.
func waitForShutdown(srv *server.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("shutdown timeout, forcing exit")
		return
	}
	log.Info().Msg("server stopped")
}
