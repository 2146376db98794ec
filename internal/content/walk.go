package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

// ErrSymlinkCycle is returned when a directory links back to one of its ancestors.
var ErrSymlinkCycle = errors.New("directory is its own ancestor")

// Dir is one directory visited by Walk.
type Dir struct {
	// Path is the directory as walked (root joined with Rel).
	Path string
	// Rel is the slash path relative to the walk root; "." for the root.
	Rel string
	// Files lists the non-hidden regular files directly inside, in entry order.
	Files []string
}

type visit struct {
	info os.FileInfo
	path string
}

// Walk traverses root depth-first in pre-order. Hidden entries are skipped and
// symlinked directories are followed. A directory reachable through two links
// is walked once per link.
func Walk(root string) ([]Dir, error) {
	w := &walker{root: root}
	if err := w.dir(root, "."); err != nil {
		return nil, err
	}
	return w.dirs, nil
}

type walker struct {
	root string
	// ancestors is the chain from the root to the directory being walked.
	ancestors []visit
	dirs      []Dir
}

func (w *walker) dir(path, rel string) error {
	info, err := os.Stat(path)
	if err != nil {
		return berrors.WalkFailed(path, err)
	}
	if !info.IsDir() {
		return berrors.WalkFailed(path, fmt.Errorf("%s is not a directory", path))
	}
	for _, v := range w.ancestors {
		if os.SameFile(v.info, info) {
			return berrors.SymlinkCycle(path, v.path, fmt.Errorf("%w: %s is %s", ErrSymlinkCycle, path, v.path))
		}
	}
	w.ancestors = append(w.ancestors, visit{info: info, path: path})
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	entries, err := os.ReadDir(path)
	if err != nil {
		return berrors.WalkFailed(path, err)
	}

	current := Dir{Path: path, Rel: rel}
	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(path, name)
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(full)
			if err != nil {
				return berrors.WalkFailed(full, err)
			}
			isDir = target.IsDir()
		}
		if isDir {
			subdirs = append(subdirs, name)
			continue
		}
		current.Files = append(current.Files, full)
	}
	w.dirs = append(w.dirs, current)

	for _, name := range subdirs {
		childRel := name
		if rel != "." {
			childRel = rel + "/" + name
		}
		if err := w.dir(filepath.Join(path, name), childRel); err != nil {
			return err
		}
	}
	return nil
}
