package supercontext

import (
	"ejbctx/internal/core/errors"
	"ejbctx/internal/shared/util"
	"log/slog"
	"os"
	"path/filepath"
)

// BackupFileName is the archive file name for an interface.
func BackupFileName(interfaceName string) string {
	return util.SafeFileName(interfaceName) + "_context.txt"
}

// SaveBackups writes one archive file per bundle into dir. Every bundle is
// attempted; the first write error is returned.
func SaveBackups(dir string, contexts []*SuperContext) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.AddContext(errors.Wrap(err, errors.CodeIO, "create backup directory"), errors.CtxPath, dir)
	}

	written := 0
	var firstErr error
	for _, sc := range contexts {
		path := filepath.Join(dir, BackupFileName(sc.InterfaceName))
		if err := util.WriteStringWithDirs(path, FormatArchive(sc), 0o644); err != nil {
			slog.Warn("failed to write super-context backup", "path", path, "error", err)
			if firstErr == nil {
				firstErr = errors.AddContext(errors.Wrap(err, errors.CodeIO, "write super-context backup"), errors.CtxPath, path)
			}
			continue
		}
		written++
	}
	slog.Info("saved super-context files", "count", written, "dir", dir)
	return written, firstErr
}
