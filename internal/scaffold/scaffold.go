// Package scaffold writes the starter site created by `blogctl init`.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed starter
var starter embed.FS

// Dirs are created even when the starter holds no file for them.
var Dirs = []string{"articles", "pages", "assets", "themes"}

// Write copies the starter site below root. Existing files are kept unless
// force is set. It returns the slash paths of the files written.
func Write(root string, force bool) ([]string, error) {
	for _, d := range Dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o750); err != nil {
			return nil, fmt.Errorf("create %s: %w", d, err)
		}
	}

	sub, err := fs.Sub(starter, "starter")
	if err != nil {
		return nil, fmt.Errorf("open starter: %w", err)
	}

	var written []string
	err = fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(root, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if _, statErr := os.Stat(target); statErr == nil && !force {
			return nil
		} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return statErr
		}
		data, err := fs.ReadFile(sub, p)
		if err != nil {
			return err
		}
		// #nosec G306 -- starter content is meant to be edited and published
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("write starter site: %w", err)
	}
	return written, nil
}
