// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and result records shared by the
// pdf-renamer packages.
package types

import "time"

// RetryConfig holds the backoff policy for calls to the generative AI API.
type RetryConfig struct {
	// MaxRetries is the total number of attempts per call (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// InitialBackoff is the wait after the first rate-limited attempt (default 10s).
	// It doubles on every further attempt.
	InitialBackoff time.Duration `json:"initial_backoff" yaml:"initial_backoff" mapstructure:"initial_backoff"`

	// MaxBackoff caps the exponential part of the wait (default 120s).
	MaxBackoff time.Duration `json:"max_backoff" yaml:"max_backoff" mapstructure:"max_backoff"`

	// MaxJitter is the upper bound of the random wait added to each backoff (default 3s).
	MaxJitter time.Duration `json:"max_jitter" yaml:"max_jitter" mapstructure:"max_jitter"`
}

// AIConfig holds settings for the Generative AI API used to judge filenames.
type AIConfig struct {
	// Model is the Gemini model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the Gemini API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	Retry RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// RenameConfig holds settings for the rename command.
type RenameConfig struct {
	AIConfig `yaml:",inline" mapstructure:",squash"`

	// Root is the directory scanned recursively for PDF files.
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	// DryRun reports the planned renames without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	// HistoryDir holds the rename history database (history.db).
	HistoryDir string `json:"history_dir" yaml:"history_dir" mapstructure:"history_dir"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty" mapstructure:"report_path"`
}
