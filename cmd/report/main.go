package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"purchase-insight/internal/cfg"
	"purchase-insight/internal/dataset"
)

func main() {
	var (
		source   = flag.String("data", "", "Dataset file path or URL (overrides config)")
		top      = flag.Int("top", 0, "Number of top features to report (overrides config)")
		logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// The data flag alone is enough to run a report without a config file.
	if *source != "" {
		os.Setenv("DATA_SOURCE", *source)
	}

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if *top > 0 {
		c.TopFeatures = *top
	}

	loader := dataset.NewLoader(c.LoadTimeout)
	ds, warnings, err := loader.Load(c.DataSource)
	if err != nil {
		log.Fatal().Err(err).Str("source", c.DataSource).Msg("dataset load failed")
	}

	writeReport(os.Stdout, ds, warnings, c)
}
