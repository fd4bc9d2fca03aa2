package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "production", "debug"))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Str("prayer", "asr").Msg("next prayer")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "asr", line["prayer"])
	assert.Equal(t, "next prayer", line["message"])
	assert.Contains(t, line, "time")
}

func TestSetupWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "production", "warn"))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupWriter_InvalidLevel(t *testing.T) {
	assert.Error(t, SetupWriter(&bytes.Buffer{}, "production", "loud"))
}
