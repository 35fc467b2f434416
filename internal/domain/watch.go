package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
)

func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if args.OutputDir == "" {
		return fmt.Errorf("watch needs an output directory")
	}

	exclude, err := compileExclude(args.Exclude)
	if err != nil {
		return err
	}

	roots, err := w.resolveRoots(ctx, args.Paths)
	if err != nil {
		return err
	}

	sources, err := w.getSources(ctx, roots, exclude)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	sources = w.outsideOutput(sources, args.OutputDir)

	results, err := w.expandAll(ctx, sources, args.Parallel)
	if err != nil {
		return err
	}

	if err := w.writeMirror(ctx, args.OutputDir, changedOnly(results)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	expanded := make(map[m.Path]string, len(results))
	for _, result := range results {
		expanded[result.Source.Origin.FullPath] = result.Source.Origin.Hash
	}

	dirs, err := w.watchDirs(ctx, roots, args.OutputDir)
	if err != nil {
		return err
	}

	slog.Debug("Watching sources", "dirs", len(dirs), "output", args.OutputDir)

	return w.WatchAdapter.Watch(ctx, dirs, args.Debounce, func(ctx context.Context, changed []m.Path) {
		w.reexpand(ctx, roots, exclude, args.OutputDir, expanded, changed)
	})
}

// reexpand expands changed files one by one. expanded maps every file to the
// hash of the content last expanded; files whose content did not change are
// skipped. Failures are reported and do not stop the watcher.
func (w *workflow) reexpand(
	ctx context.Context,
	roots []root,
	exclude []*regexp.Regexp,
	outputDir m.Path,
	expanded map[m.Path]string,
	changed []m.Path,
) {
	for _, path := range changed {
		if excluded(string(path), exclude) || w.insideOutput(path, outputDir) {
			continue
		}

		r, ok := w.rootFor(roots, path)
		if !ok {
			continue
		}

		result, fresh, err := w.reexpandFile(ctx, r, path, outputDir, expanded[path])
		if err != nil {
			slog.Error("Failed to expand changed file", "path", path, "error", err)
		} else if !fresh {
			slog.Debug("Skipped unchanged file", "path", path)
			continue
		} else {
			expanded[path] = result.Source.Origin.Hash
		}

		w.DisplayWatchEvent(ctx, result, err)
	}
}

// reexpandFile expands path unless its content still hashes to lastHash.
// fresh reports whether the content was new.
func (w *workflow) reexpandFile(ctx context.Context, r root, path, outputDir m.Path, lastHash string) (m.FileResult, bool, error) {
	source, err := w.newSource(ctx, r, path)
	if err != nil {
		return m.FileResult{Source: m.Source{Origin: &m.File{FullPath: path}}}, true, err
	}

	content, err := w.readSource(ctx, source)
	if err != nil {
		return m.FileResult{Source: source}, true, err
	}

	if lastHash != "" && source.Origin.Hash == lastHash {
		return m.FileResult{Source: source}, false, nil
	}

	result, err := w.ExpandSource(ctx, source, content)
	if err != nil {
		return m.FileResult{Source: source}, true, err
	}

	if !result.Changed() {
		return result, true, nil
	}

	return result, true, w.writeMirror(ctx, outputDir, []m.FileResult{result})
}

// watchDirs lists the directories to watch: every root directory and, for
// recursive roots, the directories below it.
func (w *workflow) watchDirs(ctx context.Context, roots []root, outputDir m.Path) ([]m.Path, error) {
	seen := make(map[m.Path]bool)

	var dirs []m.Path

	add := func(dir m.Path) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, r := range roots {
		if r.file {
			add(m.Path(filepath.Dir(string(r.path))))
			continue
		}

		if !r.recursive {
			add(r.path)
			continue
		}

		err := w.Walk(ctx, r.path, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() {
				return nil
			}

			if path != string(r.path) && (skipDir(info.Name()) || w.insideOutput(m.Path(path), outputDir)) {
				return filepath.SkipDir
			}

			add(m.Path(path))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", r.path, err)
		}
	}

	return dirs, nil
}

func (w *workflow) outsideOutput(sources []m.Source, outputDir m.Path) []m.Source {
	kept := sources[:0]

	for _, source := range sources {
		if !w.insideOutput(source.Origin.FullPath, outputDir) {
			kept = append(kept, source)
		}
	}

	return kept
}

func (w *workflow) insideOutput(path, outputDir m.Path) bool {
	rel, err := w.RelPath(outputDir, path)
	if err != nil {
		return false
	}

	return rel == "." || !strings.HasPrefix(string(rel), "..")
}
