package site

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/logfields"
)

// copyLayers copies each source tree into dst in order, later layers
// overwriting files of earlier ones. Missing layers are skipped. It returns
// the number of distinct files in dst.
func copyLayers(dst string, layers ...string) (int, error) {
	seen := map[string]struct{}{}
	for _, src := range layers {
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Assets directory not found, skipping", logfields.Path(src))
			continue
		}
		if err != nil {
			return 0, berrors.ReadFailed(src, err)
		}
		if !info.IsDir() {
			return 0, berrors.ReadFailed(src, errors.New("not a directory"))
		}
		if err := copyDir(src, dst, "", seen); err != nil {
			return 0, err
		}
	}
	return len(seen), nil
}

// copyDir recursively copies src into dst. Hidden entries are skipped and
// symlinks are followed.
func copyDir(src, dst, rel string, seen map[string]struct{}) error {
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return berrors.WriteFailed(dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return berrors.ReadFailed(src, err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := filepath.Join(rel, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return berrors.ReadFailed(srcPath, err)
		}
		if info.IsDir() {
			if err := copyDir(srcPath, dstPath, relPath, seen); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
		seen[relPath] = struct{}{}
	}
	return nil
}

// copyFile copies a single file from src to dst, replacing dst.
func copyFile(src, dst string, perm fs.FileMode) error {
	srcFile, err := os.Open(src) // #nosec G304 -- asset paths come from the configured trees
	if err != nil {
		return berrors.ReadFailed(src, err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) // #nosec G304
	if err != nil {
		return berrors.WriteFailed(dst, err)
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return berrors.WriteFailed(dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return berrors.WriteFailed(dst, err)
	}
	return nil
}
