package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"dipsport/config"
	"dipsport/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "warn", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "disabled", logLevel: "disabled", expected: zerolog.Disabled},
		{name: "invalid falls back to info", logLevel: "loud", expected: zerolog.InfoLevel},
		{name: "empty falls back to info", logLevel: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.App.Name = "venue"
	cfg.Server.LogLevel = "info"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("code", "DS-1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "venue", line["app"])
	assert.Equal(t, "DS-1", line["code"])
	assert.Equal(t, "booking created", line[zerolog.MessageFieldName])
	assert.Contains(t, line, zerolog.TimestampFieldName)
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("slot insert failed"))

	assert.Contains(t, buf.String(), "slot insert failed")
	assert.Contains(t, buf.String(), "logger_test.go")
}
