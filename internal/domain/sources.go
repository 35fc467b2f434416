package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
)

const (
	rustExt        = ".rs"
	recursiveToken = "..."
	targetDir      = "target"
)

// root is one resolved path pattern.
type root struct {
	path      m.Path
	recursive bool
	file      bool
}

func compileExclude(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func excluded(path string, exclude []*regexp.Regexp) bool {
	for _, re := range exclude {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// parseRoot splits the Go style `dir/...` suffix off a path pattern.
func parseRoot(pattern m.Path) root {
	p := string(pattern)

	switch {
	case p == recursiveToken:
		return root{path: ".", recursive: true}
	case strings.HasSuffix(p, "/"+recursiveToken):
		p = strings.TrimSuffix(p, "/"+recursiveToken)
		if p == "" {
			p = "/"
		}

		return root{path: m.Path(p), recursive: true}
	}

	return root{path: m.Path(filepath.Clean(p))}
}

// skipDir reports whether a directory below a root is never scanned.
func skipDir(name string) bool {
	return name == targetDir || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// resolveRoots stats every pattern.
func (w *workflow) resolveRoots(ctx context.Context, patterns []m.Path) ([]root, error) {
	if len(patterns) == 0 {
		patterns = []m.Path{"."}
	}

	roots := make([]root, 0, len(patterns))

	for _, pattern := range patterns {
		r := parseRoot(pattern)

		info, err := w.FileInfo(ctx, r.path)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		r.file = !info.IsDir()
		roots = append(roots, r)
	}

	return roots, nil
}

// getSources walks every root and returns the .rs files that are not
// excluded, sorted by path.
func (w *workflow) getSources(ctx context.Context, roots []root, exclude []*regexp.Regexp) ([]m.Source, error) {
	seen := make(map[m.Path]bool)

	var sources []m.Source

	add := func(r root, path string) error {
		if seen[m.Path(path)] || excluded(path, exclude) {
			return nil
		}

		source, err := w.newSource(ctx, r, m.Path(path))
		if err != nil {
			return err
		}

		seen[m.Path(path)] = true
		sources = append(sources, source)

		return nil
	}

	for _, r := range roots {
		if r.file {
			if filepath.Ext(string(r.path)) != rustExt {
				return nil, fmt.Errorf("%s is not a Rust source file", r.path)
			}

			if err := add(r, string(r.path)); err != nil {
				return nil, err
			}

			continue
		}

		err := w.Walk(ctx, r.path, r.recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != string(r.path) && skipDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(path) != rustExt {
				return nil
			}

			return add(r, path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", r.path, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.FullPath < sources[j].Origin.FullPath
	})

	return sources, nil
}

// newSource describes one file found below r. ShortPath is relative to the
// root directory and names the file inside an output mirror. Hash is filled
// in when the file is read.
func (w *workflow) newSource(ctx context.Context, r root, path m.Path) (m.Source, error) {
	base := r.path
	if r.file {
		base = m.Path(filepath.Dir(string(r.path)))
	}

	short, err := w.RelPath(base, path)
	if err != nil {
		return m.Source{}, fmt.Errorf("relative path for %s: %w", path, err)
	}

	return m.Source{Origin: &m.File{FullPath: path, ShortPath: short}}, nil
}

// readSource loads the content of source and records its hash.
func (w *workflow) readSource(ctx context.Context, source m.Source) ([]byte, error) {
	content, err := w.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source.Origin.FullPath, err)
	}

	source.Origin.Hash = contentHash(content)

	return content, nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// rootFor returns the root that owns path, preferring the deepest one.
func (w *workflow) rootFor(roots []root, path m.Path) (root, bool) {
	var (
		best  root
		found bool
		depth = -1
	)

	for _, r := range roots {
		if r.file {
			if filepath.Clean(string(r.path)) == filepath.Clean(string(path)) {
				return r, true
			}

			continue
		}

		rel, err := w.RelPath(r.path, path)
		if err != nil || strings.HasPrefix(string(rel), "..") {
			continue
		}

		if !r.recursive && strings.ContainsRune(string(rel), filepath.Separator) {
			continue
		}

		if d := len(filepath.Clean(string(r.path))); d > depth {
			best, found, depth = r, true, d
		}
	}

	return best, found
}
