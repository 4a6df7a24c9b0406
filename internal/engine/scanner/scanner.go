package scanner

import (
	"ejbctx/internal/core/errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

const JavaExtension = ".java"

type Options struct {
	ExcludeDirs       []string // glob patterns matched against directory base names
	ExcludeFiles      []string // glob patterns matched against file base names
	IgnoredExtensions []string
}

// Scanner walks a project tree and yields candidate source files.
type Scanner struct {
	dirGlobs   []glob.Glob
	fileGlobs  []glob.Glob
	ignoredExt map[string]bool
}

func New(opts Options) (*Scanner, error) {
	dirGlobs := make([]glob.Glob, 0, len(opts.ExcludeDirs))
	for _, p := range opts.ExcludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(opts.ExcludeFiles))
	for _, p := range opts.ExcludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	ignored := make(map[string]bool, len(opts.IgnoredExtensions))
	for _, ext := range opts.IgnoredExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			ignored[ext] = true
		}
	}

	return &Scanner{dirGlobs: dirGlobs, fileGlobs: fileGlobs, ignoredExt: ignored}, nil
}

// JavaFiles returns every .java file under root as absolute paths in lexicographic order.
func (s *Scanner) JavaFiles(root string) ([]string, error) {
	return s.Find(root, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), JavaExtension)
	})
}

// Find walks root and returns files whose base name satisfies match, sorted.
// Unreadable subdirectories are skipped with a warning; a missing root is an error.
func (s *Scanner) Find(root string, match func(name string) bool) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "resolve project root")
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "project path does not exist"), errors.CtxPath, absRoot)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeValidationError, "project path is not a directory"), errors.CtxPath, absRoot)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		base := filepath.Base(path)
		if d.IsDir() {
			if path != absRoot && s.excludedDir(base) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.ignoredExt[strings.ToLower(filepath.Ext(base))] {
			return nil
		}
		for _, g := range s.fileGlobs {
			if g.Match(base) {
				return nil
			}
		}
		if match != nil && !match(base) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "walk project tree")
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) excludedDir(base string) bool {
	for _, g := range s.dirGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a directory base name is filtered out.
func (s *Scanner) ExcludesDir(base string) bool {
	return s.excludedDir(base)
}

// Scan is a convenience for New(opts) followed by JavaFiles(root).
func Scan(root string, opts Options) ([]string, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return s.JavaFiles(root)
}
