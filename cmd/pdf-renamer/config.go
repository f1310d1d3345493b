// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-renamer/internal/remote"
	secretsfile "github.com/pdiddy/pdf-renamer/internal/secrets"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const envPrefix = "PDF_RENAMER"

var (
	errMissingAPIKey = errors.New("GEMINI_API_KEY is not set (use .env, PDF_RENAMER_API_KEY, the config file, or .secrets/gemini-api-key)")
	errMissingModel  = errors.New("MODEL_NAME is not set (use .env, PDF_RENAMER_MODEL, the config file, .secrets/model-name, or --model)")
)

// setConfigDefaults registers defaults and environment bindings on v. The
// original variable names GEMINI_API_KEY and MODEL_NAME are honoured next to
// the PDF_RENAMER_ prefixed ones.
func setConfigDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api_key", envPrefix+"_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("model", envPrefix+"_MODEL", "MODEL_NAME")

	v.SetDefault("retry.max_retries", remote.DefaultMaxRetries)
	v.SetDefault("retry.initial_backoff", remote.DefaultInitialBackoff)
	v.SetDefault("retry.max_backoff", remote.DefaultMaxBackoff)
	v.SetDefault("retry.max_jitter", remote.DefaultMaxJitter)
	v.SetDefault("history_dir", defaultHistoryDir())
}

// defaultHistoryDir is ~/.config/pdf-renamer, or .pdf-renamer when the home
// directory is unknown.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pdf-renamer"
	}
	return filepath.Join(home, ".config", "pdf-renamer")
}

// loadRenameConfig resolves the rename settings from v, falling back to
// secrets for the API key and model. A missing key or model is a fatal error.
func loadRenameConfig(v *viper.Viper, secrets map[string]string, root string) (types.RenameConfig, error) {
	cfg := types.RenameConfig{
		AIConfig: types.AIConfig{
			Model:  strings.TrimSpace(v.GetString("model")),
			APIKey: strings.TrimSpace(v.GetString("api_key")),
			Retry: types.RetryConfig{
				MaxRetries:     v.GetInt("retry.max_retries"),
				InitialBackoff: v.GetDuration("retry.initial_backoff"),
				MaxBackoff:     v.GetDuration("retry.max_backoff"),
				MaxJitter:      v.GetDuration("retry.max_jitter"),
			},
		},
		Root:       root,
		DryRun:     v.GetBool("dry_run"),
		HistoryDir: v.GetString("history_dir"),
		ReportPath: v.GetString("report_path"),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = secrets[secretsfile.GeminiAPIKey]
	}
	if cfg.Model == "" {
		cfg.Model = secrets[secretsfile.ModelName]
	}
	if cfg.APIKey == "" {
		return cfg, errMissingAPIKey
	}
	if cfg.Model == "" {
		return cfg, errMissingModel
	}
	if cfg.Retry.MaxBackoff > 0 && cfg.Retry.InitialBackoff > cfg.Retry.MaxBackoff {
		return cfg, fmt.Errorf("initial backoff %s exceeds max backoff %s",
			cfg.Retry.InitialBackoff, cfg.Retry.MaxBackoff)
	}
	return cfg, nil
}
