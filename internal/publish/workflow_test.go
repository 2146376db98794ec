package publish

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucawellmeier/octoblog/internal/config"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/site"
)

// fakeVCS records commands and emulates the filesystem effects the workflow
// depends on: `add -A` on the content branch snapshots the output tree,
// `rm -r` deletes everything not listed as untracked and
// `checkout <content> -- <out>` restores the snapshot.
type fakeVCS struct {
	root      string
	out       string
	branch    string
	calls     []string
	dirty     bool
	failOn    string
	untracked map[string]bool
	snapshot  map[string]string
}

func newFakeVCS(root, out string) *fakeVCS {
	return &fakeVCS{root: root, out: out, branch: "dev", dirty: true, untracked: map[string]bool{".git": true, ".env": true}}
}

func (f *fakeVCS) Run(_ context.Context, args ...string) (string, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if f.failOn != "" && call == f.failOn {
		return "", errors.New("boom")
	}
	switch {
	case call == "add -A" && f.branch == "dev":
		f.snapshot = map[string]string{}
		base := filepath.Join(f.root, f.out)
		_ = filepath.WalkDir(base, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, _ := filepath.Rel(base, p)
			data, _ := os.ReadFile(p)
			f.snapshot[rel] = string(data)
			return nil
		})
	case call == "rev-parse --abbrev-ref HEAD":
		return f.branch, nil
	case call == "rm -r -q --ignore-unmatch -- .":
		entries, err := os.ReadDir(f.root)
		if err != nil {
			return "", err
		}
		for _, e := range entries {
			if !f.untracked[e.Name()] {
				if err := os.RemoveAll(filepath.Join(f.root, e.Name())); err != nil {
					return "", err
				}
			}
		}
	case call == "status --porcelain --untracked-files=no":
		if f.dirty {
			return "M file", nil
		}
		return "", nil
	case call == "checkout dev -- "+f.out:
		for rel, body := range f.snapshot {
			p := filepath.Join(f.root, f.out, rel)
			if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
				return "", err
			}
			if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
				return "", err
			}
		}
	case len(args) >= 2 && args[0] == "checkout":
		f.branch = args[len(args)-1]
	}
	return "", nil
}

type fakeGenerator struct {
	root  string
	out   string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(context.Context) (*site.Report, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	files := map[string]string{
		"index.html":      "home",
		"tech/post.html":  "post",
		"assets/site.css": "css",
	}
	for rel, body := range files {
		p := filepath.Join(g.root, g.out, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return nil, err
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			return nil, err
		}
	}
	return &site.Report{}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{URL: "https://x.io"}
	config.ApplyDefaults(cfg)
	return cfg
}

func setupRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "articles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "articles", "a.md"), []byte("# A"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("url: x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("SECRET=1\n"), 0o600))
	return root
}

func TestSaveCommitsAndPushes(t *testing.T) {
	cfg := testConfig()
	vcs := newFakeVCS(t.TempDir(), "www")
	w := NewWorkflow(cfg, vcs, nil, vcs.root)

	require.NoError(t, w.Save(context.Background()))
	require.Equal(t, []string{
		"rev-parse --abbrev-ref HEAD",
		"add -A",
		"status --porcelain --untracked-files=no",
		"commit -m blogctl save",
		"push origin dev",
	}, vcs.calls)
}

func TestSaveSkipsCommitWhenClean(t *testing.T) {
	cfg := testConfig()
	vcs := newFakeVCS(t.TempDir(), "www")
	vcs.dirty = false

	require.NoError(t, NewWorkflow(cfg, vcs, nil, vcs.root).Save(context.Background()))
	require.Equal(t, []string{
		"rev-parse --abbrev-ref HEAD",
		"add -A",
		"status --porcelain --untracked-files=no",
		"push origin dev",
	}, vcs.calls)
}

func TestSaveRefusesOtherBranch(t *testing.T) {
	vcs := newFakeVCS(t.TempDir(), "www")
	vcs.branch = "feature"

	err := NewWorkflow(testConfig(), vcs, nil, vcs.root).Save(context.Background())
	require.True(t, berrors.IsCategory(err, berrors.CategoryGit))
	require.ErrorContains(t, err, "feature")
	require.Equal(t, []string{"rev-parse --abbrev-ref HEAD"}, vcs.calls)
}

func TestPublishRefusesOtherBranch(t *testing.T) {
	root := setupRepo(t)
	vcs := newFakeVCS(root, "www")
	vcs.branch = "feature"
	gen := &fakeGenerator{root: root, out: "www"}

	err := NewWorkflow(testConfig(), vcs, gen, root).Publish(context.Background())
	require.True(t, berrors.IsCategory(err, berrors.CategoryGit))
	require.Zero(t, gen.calls)
	require.Equal(t, []string{"rev-parse --abbrev-ref HEAD"}, vcs.calls)
}

func TestPublishSequence(t *testing.T) {
	root := setupRepo(t)
	cfg := testConfig()
	vcs := newFakeVCS(root, "www")
	gen := &fakeGenerator{root: root, out: "www"}

	require.NoError(t, NewWorkflow(cfg, vcs, gen, root).Publish(context.Background()))

	require.Equal(t, 1, gen.calls)
	require.Equal(t, []string{
		"rev-parse --abbrev-ref HEAD",
		"add -A",
		"status --porcelain --untracked-files=no",
		"commit -m blogctl save",
		"push origin dev",
		"checkout master",
		"rm -r -q --ignore-unmatch -- .",
		"checkout dev -- www",
		"add -A -- www assets index.html tech",
		"status --porcelain --untracked-files=no",
		"commit -m blogctl deploy",
		"push origin master",
		"checkout dev",
	}, vcs.calls)

	// The working tree now holds the flattened output next to the untracked
	// files (the fake VCS does not restore dev files on the final checkout).
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{".git", ".env", "index.html", "tech", "assets"}, names)
	data, err := os.ReadFile(filepath.Join(root, "tech", "post.html"))
	require.NoError(t, err)
	require.Equal(t, "post", string(data))
	require.FileExists(t, filepath.Join(root, ".git", "HEAD"))
	require.NoDirExists(t, filepath.Join(root, "www"))
	require.NoDirExists(t, filepath.Join(root, stagingName))
}

func TestPublishRestoresContentBranchOnFailure(t *testing.T) {
	root := setupRepo(t)
	cfg := testConfig()
	vcs := newFakeVCS(root, "www")
	vcs.failOn = "push origin master"
	gen := &fakeGenerator{root: root, out: "www"}

	err := NewWorkflow(cfg, vcs, gen, root).Publish(context.Background())
	require.Error(t, err)
	require.Equal(t, "checkout -f dev", vcs.calls[len(vcs.calls)-1])
	require.Equal(t, "dev", vcs.branch)
}

func TestPublishStopsWhenGenerationFails(t *testing.T) {
	root := setupRepo(t)
	vcs := newFakeVCS(root, "www")
	gen := &fakeGenerator{err: errors.New("template broke")}

	err := NewWorkflow(testConfig(), vcs, gen, root).Publish(context.Background())
	require.ErrorContains(t, err, "template broke")
	require.Equal(t, []string{"rev-parse --abbrev-ref HEAD"}, vcs.calls)
	require.FileExists(t, filepath.Join(root, "config.yaml"))
}

func TestPublishDoesNotCheckoutBackWhenSwitchFails(t *testing.T) {
	root := setupRepo(t)
	vcs := newFakeVCS(root, "www")
	vcs.failOn = "checkout master"
	gen := &fakeGenerator{root: root, out: "www"}

	err := NewWorkflow(testConfig(), vcs, gen, root).Publish(context.Background())
	require.Error(t, err)
	require.Equal(t, "checkout master", vcs.calls[len(vcs.calls)-1])
	require.FileExists(t, filepath.Join(root, "config.yaml"))
}

func TestFlattenRefusesUntrackedFileInTheWay(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "www"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "www", "index.html"), []byte("new"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("mine"), 0o600))

	_, err := NewWorkflow(testConfig(), newFakeVCS(root, "www"), nil, root).flatten("www")
	require.ErrorContains(t, err, "in the way")
	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "mine", string(data))
}

func TestGitCLIRun(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	g := GitCLI{Dir: dir}
	_, err := g.Run(context.Background(), "init")
	require.NoError(t, err)

	out, err := g.Run(context.Background(), "status", "--porcelain")
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = g.Run(context.Background(), "checkout", "no-such-branch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "git command failed")
}
