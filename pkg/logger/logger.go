package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var Log zerolog.Logger

func init() {
	Log = New(os.Stdout, "info")
}

// New builds a console logger tagged with the bot name.
func New(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("app", "vidgrab").
		Logger()
}

// Setup replaces the process logger, usually once config is loaded.
func Setup(level string) {
	Log = New(os.Stdout, level)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Info(msg string, args ...any) {
	Log.Info().Fields(args).Msg(msg)
}

func Error(msg string, args ...any) {
	Log.Error().Fields(args).Msg(msg)
}

func Debug(msg string, args ...any) {
	Log.Debug().Fields(args).Msg(msg)
}

func Warn(msg string, args ...any) {
	Log.Warn().Fields(args).Msg(msg)
}

func InfoWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond).String())
	Log.Info().Fields(args).Msg(msg)
}

func ErrorWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond).String())
	Log.Error().Fields(args).Msg(msg)
}
