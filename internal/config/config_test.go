package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEET_DECODER", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("UPLOAD_MAX_SIZE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("APP_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DecoderExcelize, cfg.SheetDecoder)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, ":8080", cfg.GetListenAddr())
	assert.Equal(t, 20971520, cfg.UploadMaxSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHEET_DECODER", "STREAM")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_URL", "https://notice.example.jp")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DecoderStream, cfg.SheetDecoder)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://notice.example.jp", cfg.AppURL)
	assert.Equal(t, ":9000", cfg.GetListenAddr())
	assert.Equal(t, 1024, cfg.UploadMaxSize)
}

func TestLoadRejectsUnknownDecoder(t *testing.T) {
	t.Setenv("SHEET_DECODER", "sheetjs")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown SHEET_DECODER")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("SHEET_DECODER", "")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown LOG_LEVEL")
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
