package dates

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"github.com/lucawellmeier/octoblog/internal/testutil/testutils"
)

func TestGitFinderOldestAndNewest(t *testing.T) {
	dir := t.TempDir()
	wt := testutils.InitRepo(t, dir)

	berlin := time.FixedZone("CET", 3600)
	first := time.Date(2021, 3, 1, 10, 0, 0, 0, berlin)
	second := time.Date(2022, 7, 15, 8, 30, 0, 0, time.UTC)
	testutils.CommitFile(t, wt, dir, "articles/tech/post.md", "# One", first)
	testutils.CommitFile(t, wt, dir, "articles/other.md", "# Other", first.Add(time.Hour))
	testutils.CommitFile(t, wt, dir, "articles/tech/post.md", "# Two", second)

	finder, err := NewGitFinder(dir)
	require.NoError(t, err)

	pub, upd, err := finder.Find(filepath.Join(dir, "articles", "tech", "post.md"))
	require.NoError(t, err)
	require.NotNil(t, pub)
	require.NotNil(t, upd)
	require.True(t, pub.Equal(first))
	require.Equal(t, time.UTC, pub.Location())
	require.True(t, upd.Equal(second))
}

func TestGitFinderUntrackedFileIsAbsent(t *testing.T) {
	dir := t.TempDir()
	wt := testutils.InitRepo(t, dir)
	testutils.CommitFile(t, wt, dir, "tracked.md", "x", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	untracked := filepath.Join(dir, "new.md")
	require.NoError(t, os.WriteFile(untracked, []byte("y"), 0o600))

	finder, err := NewGitFinder(dir)
	require.NoError(t, err)
	pub, upd, err := finder.Find(untracked)
	require.NoError(t, err)
	require.Nil(t, pub)
	require.Nil(t, upd)
}

func TestGitFinderEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	finder, err := NewGitFinder(dir)
	require.NoError(t, err)
	pub, upd, err := finder.Find(path)
	require.NoError(t, err)
	require.Nil(t, pub)
	require.Nil(t, upd)
}

func TestGitFinderOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	finder, err := NewGitFinder(dir)
	require.NoError(t, err)
	pub, upd, err := finder.Find(path)
	require.NoError(t, err)
	require.Nil(t, pub)
	require.Nil(t, upd)
}

func TestNoneFinder(t *testing.T) {
	pub, upd, err := None{}.Find("anything.md")
	require.NoError(t, err)
	require.Nil(t, pub)
	require.Nil(t, upd)
}
