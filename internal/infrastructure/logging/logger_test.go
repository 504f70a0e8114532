package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesStructuredEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: "INFO", Component: "supplier-import", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("row failed")
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "WARNING", entry["severity"])
	require.Equal(t, "row failed", entry["message"])
	require.Equal(t, "supplier-import", entry["component"])
	require.Contains(t, entry, "timestamp")
	require.Contains(t, entry, "caller")
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := NewLogger(Config{Level: "loud"})
	require.Error(t, err)
}
