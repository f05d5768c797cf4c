package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// createLogger writes to the app's error writer so that results on stdout
// stay machine readable.
func createLogger(c *cli.Context) *zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String(LogLevel))
	if err != nil || c.String(LogLevel) == "" {
		level = zerolog.InfoLevel
	}

	out := c.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer
	switch c.String(LogFormat) {
	case LogFormatJSON:
		writer = out
	default:
		f, isFile := out.(*os.File)
		if isFile {
			out = colorable.NewColorable(f)
		}
		writer = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !isFile,
			TimeFormat: time.RFC3339,
		}
	}
	// Sweep goroutines share this logger.
	log := zerolog.New(zerolog.SyncWriter(writer)).With().Timestamp().Logger().Level(level)
	return &log
}
