package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lucawellmeier/octoblog/internal/config"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/logfields"
	"github.com/lucawellmeier/octoblog/internal/site"
)

// stagingName is where the restored output tree is parked while it is moved
// to the repository root.
const stagingName = ".blogctl-staging"

// Generator renders the site into the configured output directory.
type Generator interface {
	Generate(ctx context.Context) (*site.Report, error)
}

// Workflow sequences the save and publish operations.
type Workflow struct {
	cfg  *config.Config
	vcs  VCS
	gen  Generator
	root string
}

// NewWorkflow returns a workflow over the working tree at root.
func NewWorkflow(cfg *config.Config, vcs VCS, gen Generator, root string) *Workflow {
	return &Workflow{cfg: cfg, vcs: vcs, gen: gen, root: root}
}

// Save stages every change, commits when the tree is dirty and pushes the
// content branch. The working tree must be on the content branch.
func (w *Workflow) Save(ctx context.Context) error {
	if err := w.ensureContentBranch(ctx); err != nil {
		return err
	}
	return w.save(ctx)
}

func (w *Workflow) save(ctx context.Context) error {
	p := w.cfg.Publish
	slog.Info("Saving content", logfields.Branch(p.ContentBranch))
	if err := w.commit(ctx, p.SaveMessage); err != nil {
		return err
	}
	if _, err := w.vcs.Run(ctx, "push", p.Remote, p.ContentBranch); err != nil {
		return err
	}
	slog.Info("Content saved", logfields.Branch(p.ContentBranch))
	return nil
}

// Publish regenerates the site, saves the content branch and replaces the
// publish branch contents with the generated output. The content branch is
// checked out again even when a later step fails.
//
// Only tracked files are replaced. Untracked and ignored files such as .env
// stay in the working tree and are never committed to the publish branch.
func (w *Workflow) Publish(ctx context.Context) (err error) {
	p := w.cfg.Publish
	if err := w.ensureContentBranch(ctx); err != nil {
		return err
	}
	slog.Info("Generating site for publishing", logfields.Path(w.cfg.Output.Directory))
	if _, err := w.gen.Generate(ctx); err != nil {
		return err
	}
	if err := w.save(ctx); err != nil {
		return err
	}

	slog.Info("Deploying output", logfields.Branch(p.PublishBranch))
	if _, err := w.vcs.Run(ctx, "checkout", p.PublishBranch); err != nil {
		return err
	}
	defer func() {
		args := []string{"checkout", p.ContentBranch}
		if err != nil {
			args = []string{"checkout", "-f", p.ContentBranch}
		}
		// The restore must run even when ctx is already canceled.
		if _, restoreErr := w.vcs.Run(context.WithoutCancel(ctx), args...); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
	}()

	if _, err := w.vcs.Run(ctx, "rm", "-r", "-q", "--ignore-unmatch", "--", "."); err != nil {
		return err
	}
	out := filepath.ToSlash(filepath.Clean(w.cfg.Output.Directory))
	if _, err := w.vcs.Run(ctx, "checkout", p.ContentBranch, "--", out); err != nil {
		return err
	}
	moved, err := w.flatten(out)
	if err != nil {
		return err
	}
	// out is still in the index from the checkout; naming it stages its removal.
	if err := w.commit(ctx, p.DeployMessage, append([]string{out}, moved...)...); err != nil {
		return err
	}
	if _, err := w.vcs.Run(ctx, "push", p.Remote, p.PublishBranch); err != nil {
		return err
	}
	slog.Info("Site published", logfields.Branch(p.PublishBranch))
	return nil
}

// ensureContentBranch fails unless HEAD is the content branch.
func (w *Workflow) ensureContentBranch(ctx context.Context) error {
	head, err := w.vcs.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	if want := w.cfg.Publish.ContentBranch; head != want {
		return berrors.BranchMismatch(want, head)
	}
	return nil
}

// commit stages paths (everything when none are given) and commits unless
// nothing tracked changed.
func (w *Workflow) commit(ctx context.Context, message string, paths ...string) error {
	args := []string{"add", "-A"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	if _, err := w.vcs.Run(ctx, args...); err != nil {
		return err
	}
	status, err := w.vcs.Run(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return err
	}
	if status == "" {
		slog.Info("Nothing to commit")
		return nil
	}
	_, err = w.vcs.Run(ctx, "commit", "-m", message)
	return err
}

// flatten moves the contents of the restored output directory to the root
// and returns the moved entry names. Untracked files in the way are an error.
func (w *Workflow) flatten(out string) ([]string, error) {
	src := filepath.Join(w.root, filepath.FromSlash(out))
	staging := filepath.Join(w.root, stagingName)
	if err := os.Rename(src, staging); err != nil {
		return nil, berrors.WriteFailed(src, err)
	}
	entries, err := os.ReadDir(staging)
	if err != nil {
		return nil, berrors.ReadFailed(staging, err)
	}
	moved := make([]string, 0, len(entries))
	for _, e := range entries {
		from := filepath.Join(staging, e.Name())
		to := filepath.Join(w.root, e.Name())
		if _, err := os.Lstat(to); err == nil {
			return moved, berrors.WriteFailed(to, fmt.Errorf("untracked %s is in the way of the generated output", e.Name()))
		}
		if err := os.Rename(from, to); err != nil {
			return moved, berrors.WriteFailed(to, err)
		}
		moved = append(moved, e.Name())
	}
	if err := os.RemoveAll(staging); err != nil {
		return moved, berrors.WriteFailed(staging, err)
	}
	// Nested output directories leave their now empty parents behind.
	for dir := filepath.Dir(filepath.FromSlash(out)); dir != "."; dir = filepath.Dir(dir) {
		_ = os.Remove(filepath.Join(w.root, dir))
	}
	return moved, nil
}
