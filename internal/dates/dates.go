// Package dates resolves publication and last-update timestamps for content files.
package dates

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/lucawellmeier/octoblog/internal/logfields"
)

// Finder returns the publication date and last update of a file. Either value
// is nil when it cannot be determined.
type Finder interface {
	Find(path string) (published, updated *time.Time, err error)
}

// None never knows any date.
type None struct{}

// Find implements Finder.
func (None) Find(string) (*time.Time, *time.Time, error) { return nil, nil, nil }

// GitFinder reads dates from the commit history of the repository enclosing a
// directory. The oldest commit touching a file is its publication date and the
// newest is its last update.
type GitFinder struct {
	repo *git.Repository
	root string
}

// NewGitFinder opens the repository containing dir. A directory outside any
// repository yields a finder that reports every date as absent.
func NewGitFinder(dir string) (*GitFinder, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Debug("No git repository found, dates will be absent", logfields.Path(dir))
		return &GitFinder{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree at %s: %w", dir, err)
	}
	root, err := canonical(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &GitFinder{repo: repo, root: root}, nil
}

// Find implements Finder.
func (g *GitFinder) Find(path string) (*time.Time, *time.Time, error) {
	if g.repo == nil {
		return nil, nil, nil
	}
	rel, ok, err := g.relative(path)
	if err != nil || !ok {
		return nil, nil, err
	}

	head, err := g.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := g.repo.Log(&git.LogOptions{From: head.Hash(), FileName: &rel})
	if err != nil {
		return nil, nil, fmt.Errorf("history of %s: %w", rel, err)
	}
	defer iter.Close()

	var oldest, newest *time.Time
	err = iter.ForEach(func(c *object.Commit) error {
		when := c.Author.When.UTC()
		if oldest == nil || when.Before(*oldest) {
			t := when
			oldest = &t
		}
		if newest == nil || when.After(*newest) {
			t := when
			newest = &t
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("history of %s: %w", rel, err)
	}
	return oldest, newest, nil
}

// relative converts path into the slash form git uses inside the worktree.
// ok is false when the file lies outside the worktree.
func (g *GitFinder) relative(path string) (string, bool, error) {
	abs, err := canonical(path)
	if err != nil {
		return "", false, err
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return "", false, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false, nil
	}
	return filepath.ToSlash(rel), true, nil
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}
