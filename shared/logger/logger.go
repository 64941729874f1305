package logger

import (
	"io"
	"os"
	"time"

	"dipsport/config"
	"dipsport/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger: JSON lines in production, console output elsewhere.
func Init(cfg *config.Config) {
	InitWithWriter(cfg, writer(cfg.Server.Env))
}

// InitWithWriter is Init with an explicit sink.
func InitWithWriter(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != constant.Empty {
		ctx = ctx.Str("app", cfg.App.Name)
	}

	log.Logger = ctx.Logger()

	SetLogLevel(cfg)
}

func writer(env string) io.Writer {
	if env == constant.ServerEnvProduction {
		return os.Stdout
	}

	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info when it is missing or invalid.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
		log.Debug().Str("loglevel", level.String()).Msg("Environment has no valid log level set up, using default.")
	}

	zerolog.SetGlobalLevel(level)
}
