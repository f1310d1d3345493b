// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename asks the model about every PDF under a directory and
// renames the files it says are badly capitalised. Failures on one file are
// logged and counted; they never stop the batch.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-renamer/internal/decision"
	"github.com/pdiddy/pdf-renamer/internal/walk"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

var (
	ErrInvalidName  = errors.New("invalid file name")
	ErrTargetExists = errors.New("target file already exists")
)

// Caller sends a prompt and returns the model's reply; "" means no usable
// answer. *remote.Client implements it.
type Caller interface {
	Call(ctx context.Context, prompt string) string
}

// Recorder persists applied renames. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e types.HistoryEntry) (int64, error)
}

// Summary holds counts from one run.
type Summary struct {
	Renamed   int `json:"renamed" yaml:"renamed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
	Planned   int `json:"planned" yaml:"planned"`
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Renamed + s.Unchanged + s.Skipped + s.Failed + s.Planned
}

// HasFailures reports whether any rename failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(o types.Outcome) {
	switch o {
	case types.OutcomeRenamed:
		s.Renamed++
	case types.OutcomeUnchanged:
		s.Unchanged++
	case types.OutcomeSkipped:
		s.Skipped++
	case types.OutcomeFailed:
		s.Failed++
	case types.OutcomePlanned:
		s.Planned++
	}
}

// Processor renames the PDFs under a root directory one file at a time.
type Processor struct {
	Caller Caller
	FS     afero.Fs

	// History is optional.
	History Recorder
	Logger  *zap.Logger

	// Model is stored with each history entry.
	Model string

	// DryRun reports planned renames without touching FS or History.
	DryRun bool
}

// Run processes every PDF under root in path order, writing one status line
// per file to w. The only errors returned are an unusable root and a
// cancelled ctx; per-file problems are reported in the results.
func (p *Processor) Run(ctx context.Context, root string, w io.Writer) (Summary, []types.FileResult, error) {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}

	p.Logger.Info("processing directory", zap.String("root", root), zap.Bool("dry_run", p.DryRun))

	candidates, err := walk.Candidates(p.FS, root)
	if err != nil {
		return Summary{}, nil, err
	}
	fmt.Fprintf(w, "found %d PDF file(s) under %s\n", len(candidates), root)

	var summary Summary
	results := make([]types.FileResult, 0, len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, results, err
		}
		res := p.processFile(ctx, c, w)
		summary.add(res.Outcome)
		results = append(results, res)
	}

	fmt.Fprintf(w, "\nBatch summary: %d renamed, %d unchanged, %d skipped, %d failed",
		summary.Renamed, summary.Unchanged, summary.Skipped, summary.Failed)
	if p.DryRun {
		fmt.Fprintf(w, ", %d planned", summary.Planned)
	}
	fmt.Fprintf(w, " (total: %d)\n", summary.Total())

	p.Logger.Info("directory processing complete", zap.String("root", root), zap.Int("files", summary.Total()))
	return summary, results, nil
}

func (p *Processor) processFile(ctx context.Context, c walk.Candidate, w io.Writer) types.FileResult {
	res := types.FileResult{Dir: c.Dir, OldName: c.Name}
	log := p.Logger.With(zap.String("file", c.Path()))
	log.Info("analyzing file")

	prompt, err := decision.Prompt(c.Title())
	if err != nil {
		return p.fail(w, log, res, fmt.Errorf("rendering prompt: %w", err))
	}

	raw := p.Caller.Call(ctx, prompt)
	if raw == "" {
		log.Error("received no response from model", zap.String("title", c.Title()))
		res.Outcome = types.OutcomeSkipped
		res.Error = decision.ErrEmptyResponse.Error()
		fmt.Fprintf(w, "skipped   %s (no response)\n", c.Name)
		return res
	}

	d, err := decision.Parse(raw, c.Title())
	if err != nil {
		log.Warn("could not parse model response, leaving file unchanged",
			zap.String("response", raw), zap.Error(err))
		res.Error = err.Error()
	}
	if !d.ShouldRename {
		log.Info("no change needed")
		res.Outcome = types.OutcomeUnchanged
		fmt.Fprintf(w, "unchanged %s\n", c.Name)
		return res
	}

	newName := d.ProposedName + c.Ext()
	res.NewName = newName

	if p.DryRun {
		log.Info("would rename", zap.String("new_name", newName))
		res.Outcome = types.OutcomePlanned
		fmt.Fprintf(w, "planned   %s -> %s\n", c.Name, newName)
		return res
	}

	if err := p.apply(c, newName); err != nil {
		return p.fail(w, log, res, err)
	}

	log.Info("renamed", zap.String("new_name", newName))
	res.Outcome = types.OutcomeRenamed
	fmt.Fprintf(w, "renamed   %s -> %s\n", c.Name, newName)

	p.record(ctx, log, c, newName)
	return res
}

func (p *Processor) fail(w io.Writer, log *zap.Logger, res types.FileResult, err error) types.FileResult {
	log.Error("could not rename file", zap.Error(err))
	res.Outcome = types.OutcomeFailed
	res.Error = err.Error()
	fmt.Fprintf(w, "failed    %s: %v\n", res.OldName, err)
	return res
}

// apply renames c to newName within the same directory. It refuses names
// that would leave the directory and never replaces a different file; a
// case-only rename on a case-insensitive filesystem is allowed.
func (p *Processor) apply(c walk.Candidate, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}

	oldPath := c.Path()
	newPath := filepath.Join(c.Dir, newName)

	newInfo, err := p.FS.Stat(newPath)
	switch {
	case err == nil:
		oldInfo, oerr := p.FS.Stat(oldPath)
		if oerr != nil || !os.SameFile(oldInfo, newInfo) {
			return fmt.Errorf("%w: %s", ErrTargetExists, newName)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("checking %s: %w", newPath, err)
	}

	if err := p.FS.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming %s: %w", c.Name, err)
	}
	return nil
}

func (p *Processor) record(ctx context.Context, log *zap.Logger, c walk.Candidate, newName string) {
	if p.History == nil {
		return
	}
	_, err := p.History.Record(ctx, types.HistoryEntry{
		Dir:     c.Dir,
		OldName: c.Name,
		NewName: newName,
		Model:   p.Model,
	})
	if err != nil {
		log.Warn("could not record rename in history", zap.Error(err))
	}
}

// validName rejects names that are empty, special or contain a path
// separator or NUL.
func validName(name string) error {
	base := strings.TrimSpace(name)
	switch {
	case base == "", base == ".", base == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
