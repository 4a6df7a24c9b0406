package project

import (
	"archive/zip"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/shared/util"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Input is a directory ready for analysis. Cleanup removes anything
// PrepareInput created and is always safe to call.
type Input struct {
	Root        string
	FromArchive bool
	Cleanup     func() error
}

func noCleanup() error { return nil }

// PrepareInput accepts a project directory or a .zip archive. Archives are
// extracted into a fresh temporary directory.
func PrepareInput(path string) (Input, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Input{Cleanup: noCleanup}, errors.Wrap(err, errors.CodeValidationError, "resolve input path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Input{Cleanup: noCleanup}, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, MsgPathMissing), errors.CtxPath, abs)
	}
	if info.IsDir() {
		return Input{Root: abs, Cleanup: noCleanup}, nil
	}
	if !strings.EqualFold(filepath.Ext(abs), ".zip") {
		return Input{Cleanup: noCleanup}, errors.AddContext(errors.New(errors.CodeValidationError, "input must be a directory or a .zip archive"), errors.CtxPath, abs)
	}

	tmp, err := os.MkdirTemp("", "ejbctx-*")
	if err != nil {
		return Input{Cleanup: noCleanup}, errors.Wrap(err, errors.CodeIO, "create extraction directory")
	}
	cleanup := func() error { return os.RemoveAll(tmp) }

	root, err := ExtractZip(abs, tmp)
	if err != nil {
		_ = cleanup()
		return Input{Cleanup: noCleanup}, err
	}
	slog.Info("extracted project archive", "archive", abs, "root", root)
	return Input{Root: root, FromArchive: true, Cleanup: cleanup}, nil
}

// ExtractZip unpacks archive into dest and returns the project root: the single
// top-level directory when the archive has exactly one, dest otherwise.
// Entries that would land outside dest are rejected.
func ExtractZip(archive, dest string) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "open zip archive"), errors.CtxPath, archive)
	}
	defer zr.Close()

	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeIO, "resolve extraction directory")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CodeIO, "create extraction directory")
	}

	for _, f := range zr.File {
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if !util.HasPathPrefix(target, dest) || target == dest && !f.FileInfo().IsDir() {
			return "", errors.AddContext(errors.New(errors.CodeValidationError, "zip entry escapes extraction directory"), errors.CtxPath, f.Name)
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", errors.Wrap(err, errors.CodeIO, "create directory from archive")
			}
			continue
		case mode&os.ModeSymlink != 0:
			slog.Warn("skipping symlink in archive", "entry", f.Name)
			continue
		}

		if err := extractFile(f, target); err != nil {
			return "", errors.AddContext(errors.Wrap(err, errors.CodeIO, "extract archive entry"), errors.CtxPath, f.Name)
		}
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeIO, "list extracted files")
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dest, entries[0].Name()), nil
	}
	return dest, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open zip entry: %w", err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("write file %s: %w", target, err)
	}
	return nil
}
