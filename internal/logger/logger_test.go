package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("whatever"))
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core)).With(zap.String("component", "catalog"))

	log.Info("price list built", zap.Int("items", 3))
	log.Debug("dropped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "price list built", entries[0].Message)
	assert.Equal(t, "catalog", entries[0].ContextMap()["component"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["items"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.log")
	log := NewZapLogger(&ZapLoggerConfig{
		Encoding:          "json",
		Level:             "info",
		DisableStacktrace: true,
		FilePath:          path,
		MaxSizeMB:         1,
	})

	log.Info("written to file")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
