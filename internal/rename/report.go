// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Report describes one run for the --report file.
type Report struct {
	Root       string             `yaml:"root"`
	Model      string             `yaml:"model"`
	DryRun     bool               `yaml:"dry_run"`
	StartedAt  time.Time          `yaml:"started_at"`
	FinishedAt time.Time          `yaml:"finished_at"`
	Summary    Summary            `yaml:"summary"`
	Files      []types.FileResult `yaml:"files"`
}

// WriteReport marshals r to a YAML file at path on fs, creating parent
// directories.
func WriteReport(fs afero.Fs, path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
