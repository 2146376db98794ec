// Package testutils holds helpers shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// InitRepo initializes a git repository in dir and returns its worktree.
func InitRepo(t *testing.T, dir string) *git.Worktree {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "init git repo")
	wt, err := repo.Worktree()
	require.NoError(t, err, "open worktree")
	return wt
}

// CommitFile writes rel below dir and commits it with an author timestamp of when.
func CommitFile(t *testing.T, wt *git.Worktree, dir, rel, body string, when time.Time) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	_, err := wt.Add(filepath.ToSlash(rel))
	require.NoError(t, err, "stage %s", rel)
	_, err = wt.Commit("update "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: when},
	})
	require.NoError(t, err, "commit %s", rel)
}
