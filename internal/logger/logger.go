package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Console output is for humans running
// the binaries locally; set JSON via LOG_FORMAT=json for anything scraped.
func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// New returns a logger tagged with the component name.
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
