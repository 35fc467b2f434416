// Package domain contains the mwt expansion workflow and the dual-variant
// dispatch around the rewrite engine.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"golang.org/x/sync/errgroup"

	"github.com/phi-fell/mwt/internal/adapter"
	"github.com/phi-fell/mwt/internal/controller"
	m "github.com/phi-fell/mwt/internal/model"
)

const filePerm = 0o644

// Workflow runs expansions over sets of files.
type Workflow interface {
	// Expand expands every marked function below args.Paths and writes the
	// changed files according to args.Mode. It returns the changed files.
	Expand(ctx context.Context, args ExpandArgs) ([]m.FileResult, error)
	// List reports every marked function below args.Paths through the UI.
	List(ctx context.Context, args ListArgs) error
	// Watch mirrors expansions into args.OutputDir until ctx is cancelled.
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.WatchAdapter
	controller.UI
	Expander
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	watchAdapter adapter.WatchAdapter,
	ui controller.UI,
	expander Expander,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		WatchAdapter:    watchAdapter,
		UI:              ui,
		Expander:        expander,
	}
}

func (w *workflow) Expand(ctx context.Context, args ExpandArgs) ([]m.FileResult, error) {
	mode, err := ParseOutputMode(string(args.Mode))
	if err != nil {
		return nil, err
	}

	if err := validateOutput(mode, args); err != nil {
		return nil, err
	}

	results, err := w.collect(ctx, args.Paths, args.Exclude, args.Parallel)
	if err != nil {
		slog.Error("Failed to expand sources", "error", err)
		return nil, err
	}

	changed := changedOnly(results)
	slog.Debug("Expanded sources", "files", len(results), "changed", len(changed), "mode", mode)

	switch mode {
	case OutputStdout:
		err = w.DisplayExpanded(ctx, changed)
	case OutputWrite:
		err = w.writeInPlace(ctx, changed)
	case OutputDir:
		err = w.writeMirror(ctx, args.OutputDir, changed)
	case OutputDiff:
		err = w.writePatch(ctx, args.DiffFile, changed)
	}

	if err != nil {
		return nil, fmt.Errorf("write %s output: %w", mode, err)
	}

	return changed, nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	results, err := w.collect(ctx, args.Paths, args.Exclude, args.Parallel)
	if err != nil {
		slog.Error("Failed to expand sources", "error", err)
		return err
	}

	if err := w.DisplayExpansions(ctx, changedOnly(results)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// collect resolves the path patterns and expands every file found.
func (w *workflow) collect(ctx context.Context, paths []m.Path, exclude []string, parallel int) ([]m.FileResult, error) {
	patterns, err := compileExclude(exclude)
	if err != nil {
		return nil, err
	}

	roots, err := w.resolveRoots(ctx, paths)
	if err != nil {
		return nil, err
	}

	sources, err := w.getSources(ctx, roots, patterns)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	return w.expandAll(ctx, sources, parallel)
}

// expandAll expands sources concurrently. Results keep the order of sources.
// The first failure cancels the remaining files.
func (w *workflow) expandAll(ctx context.Context, sources []m.Source, parallel int) ([]m.FileResult, error) {
	results := make([]m.FileResult, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for i, source := range sources {
		group.Go(func() error {
			result, err := w.expandFile(groupCtx, source)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (w *workflow) expandFile(ctx context.Context, source m.Source) (m.FileResult, error) {
	content, err := w.readSource(ctx, source)
	if err != nil {
		return m.FileResult{}, err
	}

	return w.ExpandSource(ctx, source, content)
}

func (w *workflow) writeInPlace(ctx context.Context, results []m.FileResult) error {
	for _, result := range results {
		if err := w.WriteFile(ctx, result.Source.Origin.FullPath, result.Expanded, filePerm); err != nil {
			return err
		}

		slog.Debug("Wrote expanded file", "path", result.Source.Origin.FullPath)
	}

	return nil
}

func (w *workflow) writeMirror(ctx context.Context, dir m.Path, results []m.FileResult) error {
	for _, result := range results {
		target, err := w.mirrorPath(dir, result.Source)
		if err != nil {
			return err
		}

		if err := w.WriteFile(ctx, target, result.Expanded, filePerm); err != nil {
			return err
		}

		slog.Debug("Wrote expanded file", "path", target)
	}

	return nil
}

func (w *workflow) mirrorPath(dir m.Path, source m.Source) (m.Path, error) {
	short := string(source.Origin.ShortPath)
	if filepath.IsAbs(short) || strings.HasPrefix(short, "..") {
		return "", fmt.Errorf("cannot mirror %s outside its root", source.Origin.FullPath)
	}

	return w.JoinPath(string(dir), short), nil
}

func (w *workflow) writePatch(ctx context.Context, diffFile m.Path, results []m.FileResult) error {
	var patch strings.Builder

	for _, result := range results {
		name := filepath.ToSlash(string(result.Source.Origin.FullPath))
		patch.WriteString(godiffpatch.GeneratePatch(name, string(result.Original), string(result.Expanded)))
	}

	return w.WriteFile(ctx, diffFile, []byte(patch.String()), filePerm)
}

func validateOutput(mode OutputMode, args ExpandArgs) error {
	switch {
	case mode == OutputDir && args.OutputDir == "":
		return fmt.Errorf("output mode needs an output directory")
	case mode == OutputDiff && args.DiffFile == "":
		return fmt.Errorf("diff mode needs a diff file")
	}

	return nil
}

func changedOnly(results []m.FileResult) []m.FileResult {
	changed := make([]m.FileResult, 0, len(results))

	for _, result := range results {
		if result.Changed() {
			changed = append(changed, result)
		}
	}

	return changed
}
