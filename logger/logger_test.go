package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.log")

	log, err := New("warn", []string{path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), `"msg":"shown"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", nil)
	assert.Error(t, err)
}
