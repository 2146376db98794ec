// Package publish snapshots the content branch and deploys the generated site
// to the publish branch.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

// VCS runs version-control commands in the repository working tree.
type VCS interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// GitCLI invokes the git binary present on PATH.
type GitCLI struct {
	// Dir is the working tree; empty means the current directory.
	Dir string
}

// Run executes git with args and returns its trimmed stdout.
func (g GitCLI) Run(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", berrors.GitCommandFailed(args, fmt.Errorf("git binary not found: %w", err))
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Running git", slog.String("args", strings.Join(args, " ")))

	err := cmd.Run()
	outStr := strings.TrimSpace(stdout.String())
	errStr := strings.TrimSpace(stderr.String())
	if errStr != "" {
		slog.Debug("git stderr", slog.String("output", errStr))
	}
	if err != nil {
		output := errStr
		if output == "" {
			output = outStr
		}
		if output != "" {
			return outStr, berrors.GitCommandFailed(args, fmt.Errorf("%w: %s", err, output))
		}
		return outStr, berrors.GitCommandFailed(args, err)
	}
	return outStr, nil
}
