package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRollingFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gin.log")

	l, err := NewRollingFileLogger(path, "info", 1, 1, 1, false)
	require.NoError(t, err)
	l.Info("hello")
	l.Debug("filtered")
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.NotContains(t, string(b), "filtered")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "warn", parseLevel("warn").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}
