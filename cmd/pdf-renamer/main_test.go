// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "MODEL_NAME",
		"PDF_RENAMER_API_KEY", "PDF_RENAMER_MODEL", "PDF_RENAMER_RETRY_MAX_RETRIES",
	} {
		t.Setenv(k, "")
	}
	v := viper.New()
	setConfigDefaults(v)
	return v
}

func TestLoadRenameConfig_LegacyEnvNames(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("MODEL_NAME", "gemini-test")

	cfg, err := loadRenameConfig(v, nil, "/lib")
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, "/lib", cfg.Root)
	assert.Equal(t, types.RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 10 * time.Second,
		MaxBackoff:     120 * time.Second,
		MaxJitter:      3 * time.Second,
	}, cfg.Retry)
	assert.NotEmpty(t, cfg.HistoryDir)
}

func TestLoadRenameConfig_PrefixedEnvWins(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("PDF_RENAMER_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "legacy")
	t.Setenv("MODEL_NAME", "gemini-test")
	t.Setenv("PDF_RENAMER_RETRY_MAX_RETRIES", "2")

	cfg, err := loadRenameConfig(v, nil, "/lib")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.APIKey)
	assert.Equal(t, 2, cfg.Retry.MaxRetries)
}

func TestLoadRenameConfig_SecretFallback(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("MODEL_NAME", "gemini-test")

	cfg, err := loadRenameConfig(v, map[string]string{"gemini-api-key": "from-secrets"}, "/lib")
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", cfg.APIKey)
}

func TestLoadRenameConfig_ModelSecretFallback(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := loadRenameConfig(v, map[string]string{"model-name": "gemini-from-file"}, "/lib")
	require.NoError(t, err)
	assert.Equal(t, "gemini-from-file", cfg.Model)
}

func TestLoadRenameConfig_MissingKey(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("MODEL_NAME", "gemini-test")

	_, err := loadRenameConfig(v, map[string]string{}, "/lib")
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func TestLoadRenameConfig_MissingModel(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GEMINI_API_KEY", "key")

	_, err := loadRenameConfig(v, nil, "/lib")
	assert.ErrorIs(t, err, errMissingModel)
}

func TestLoadRenameConfig_BackoffOrder(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("MODEL_NAME", "gemini-test")
	v.Set("retry.initial_backoff", 5*time.Minute)

	_, err := loadRenameConfig(v, nil, "/lib")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds max backoff")
}

func TestFormatHistory(t *testing.T) {
	entries := []types.HistoryEntry{{
		ID: 1, Dir: "/lib", OldName: "foobar.pdf", NewName: "FooBar.pdf",
		Model: "gemini-test", RenamedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, entries, false))
		assert.Contains(t, buf.String(), "foobar.pdf")
		assert.Contains(t, buf.String(), "FooBar.pdf")
		assert.Contains(t, buf.String(), "/lib")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, entries, true))
		var got []types.HistoryEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "FooBar.pdf", got[0].NewName)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, nil, false))
		assert.Contains(t, buf.String(), "No renames recorded.")

		buf.Reset()
		require.NoError(t, formatHistory(&buf, nil, true))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
