package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(DebugLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigureWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(Config{Level: InfoLevel, Output: &buf})
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Int64("course_id", 7).Msg("course created")
	log.Debug().Msg("hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "course created", entry["message"])
	assert.Equal(t, float64(7), entry["course_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestConfigureWithRotatedFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "api.log")
	log := Configure(Config{Level: InfoLevel, Output: &buf, File: FileConfig{Path: path, MaxSizeMB: 1}})

	log.Info().Msg("to both")
	assert.Contains(t, buf.String(), "to both")
	assert.FileExists(t, path)
}
