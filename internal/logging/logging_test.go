package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvknap/internal/logging"
)

func TestParseLevel(t *testing.T) {
	for in, ok := range map[string]bool{"debug": true, "INFO": true, "": true, "warning": true, "error": true, "loud": false} {
		_, err := logging.ParseLevel(in)
		assert.Equal(t, ok, err == nil, in)
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Level = "warn"
	log, closer, err := logging.New(&buf, cfg)
	require.NoError(t, err)
	defer closer.Close()

	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=1")
}

func TestNew_JSONAndFileSink(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "lvknap.log")
	cfg := logging.DefaultConfig()
	cfg.Format = "json"
	cfg.File = path

	log, closer, err := logging.New(&buf, cfg)
	require.NoError(t, err)
	log.Debug("file only")
	log.Info("both")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), `"msg":"both"`)
	assert.NotContains(t, buf.String(), "file only")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file only")
	assert.Contains(t, string(data), "both")
}

func TestNew_BadConfig(t *testing.T) {
	_, _, err := logging.New(&bytes.Buffer{}, logging.Config{Level: "info", Format: "xml"})
	require.Error(t, err)
	_, _, err = logging.New(&bytes.Buffer{}, logging.Config{Level: "nope"})
	require.Error(t, err)
}
