package commands

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/kg-client/pkg/kg"
)

// zerologLogger adapts zerolog to kg.Logger.
type zerologLogger struct {
	logger zerolog.Logger
}

// newLogger returns a console logger on w. Without debug only warnings and
// errors are written.
func newLogger(w io.Writer, debug bool) kg.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}

	return &zerologLogger{
		logger: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *zerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
