package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/logging"
	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/config"
)

func TestSlogLogger_MapsLevelsAndMetadata(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := logging.NewSlogLogger(slog.New(handler))

	// Act
	logger.Log(common.LevelWarning, "turn completed with location errors", map[string]interface{}{
		"turn":     4,
		"location": "Earth",
	})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "turn completed with location errors", record["msg"])
	assert.Equal(t, "Earth", record["location"])
	assert.Equal(t, 4.0, record["turn"])
	assert.Less(t, strings.Index(buf.String(), `"location"`), strings.Index(buf.String(), `"turn"`))
}

func TestNew_FileOutputRespectsLevel(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "sim.log")
	cfg := config.LoggingConfig{Level: "warn", Format: "text", Output: "file", FilePath: path}

	// Act
	logger, closer, err := logging.New(cfg)
	require.NoError(t, err)
	logger.Log(common.LevelInfo, "dropped", nil)
	logger.Log(common.LevelError, "kept", map[string]interface{}{"game": "g1"})
	require.NoError(t, closer.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "msg=kept")
	assert.Contains(t, string(data), "game=g1")
}

func TestNew_UnwritableFile(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: filepath.Join(t.TempDir(), "missing", "sim.log")}

	_, _, err := logging.New(cfg)

	assert.Error(t, err)
}
