// pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	// Default to console output with color
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "warehouse-api").
		Caller().
		Logger()
}

// SetLevel sets the log level. Accepts zerolog level names plus the gin
// modes the server config carries ("debug", "release", "test").
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		switch levelStr {
		case "release":
			level = zerolog.InfoLevel
		case "test":
			level = zerolog.WarnLevel
		default:
			Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
			level = zerolog.InfoLevel
		}
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}
