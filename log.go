package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// logSettings are read from the environment before flags are parsed so
// early startup (config discovery) already logs at the right level.
type logSettings struct {
	Debug   bool   `env:"MATXA_DEBUG" envDefault:"false"`
	LogFile string `env:"MATXA_LOGFILE"`
}

// setupLog configures the process logger and returns a closer for the
// log file, if any.
func setupLog() (func() error, error) {
	settings, err := env.ParseAs[logSettings]()
	if err != nil {
		return nil, fmt.Errorf("error parsing log settings: %w", err)
	}

	if settings.Debug || viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.SetOutput(f)
		log.SetReportTimestamp(true)
		return f.Close, nil
	}

	log.SetOutput(os.Stderr)
	return func() error { return nil }, nil
}
