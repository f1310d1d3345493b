// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Outcome is the result of processing one PDF file.
type Outcome string

const (
	OutcomeRenamed   Outcome = "renamed"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomePlanned   Outcome = "planned"
)

// FileResult records what happened to a single file during a run.
type FileResult struct {
	// Dir is the directory containing the file.
	Dir string `json:"dir" yaml:"dir"`

	// OldName is the filename before the run.
	OldName string `json:"old_name" yaml:"old_name"`

	// NewName is the proposed or applied filename; empty when unchanged.
	NewName string `json:"new_name,omitempty" yaml:"new_name,omitempty"`

	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Error describes a failure or parse warning.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HistoryEntry is one applied rename as persisted in the history database.
type HistoryEntry struct {
	ID        int64     `json:"id" yaml:"id"`
	Dir       string    `json:"dir" yaml:"dir"`
	OldName   string    `json:"old_name" yaml:"old_name"`
	NewName   string    `json:"new_name" yaml:"new_name"`
	Model     string    `json:"model" yaml:"model"`
	RenamedAt time.Time `json:"renamed_at" yaml:"renamed_at"`
}
