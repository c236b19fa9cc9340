package versiongate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// VCS is the version-control capability the gate depends on.
type VCS interface {
	// HasStagedChange reports whether path differs between the index and HEAD.
	HasStagedChange(ctx context.Context, path string) (bool, error)
	// StageFile adds path to the index.
	StageFile(ctx context.Context, path string) error
}

// Git implements VCS by running the git binary inside a working tree.
type Git struct {
	Dir    string
	logger *slog.Logger
}

var _ VCS = (*Git)(nil)

// NewGit returns a Git rooted at dir. A nil logger discards log output.
func NewGit(dir string, logger *slog.Logger) *Git {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Git{Dir: dir, logger: logger}
}

func (g *Git) command(ctx context.Context, args ...string) *exec.Cmd {
	full := append([]string{"-C", g.Dir}, args...)
	g.logger.Debug("running git", "dir", g.Dir, "args", args)
	return exec.CommandContext(ctx, "git", full...)
}

// literalPathspec stops git from expanding glob characters in path.
func literalPathspec(path string) string {
	return ":(literal)" + filepath.ToSlash(path)
}

// CheckGit verifies that git is available on the system.
func CheckGit(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// HasStagedChange runs `git diff --cached --exit-code` scoped to path.
// Exit status 0 means no staged difference; any other exit status counts
// as a change. An error is returned only when git could not be run.
func (g *Git) HasStagedChange(ctx context.Context, path string) (bool, error) {
	cmd := g.command(ctx, "diff", "--cached", "--quiet", "--exit-code", "--", literalPathspec(path))
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		g.logger.Debug("staged diff reported", "path", path, "exit_code", exitErr.ExitCode())
		return true, nil
	}
	return false, fmt.Errorf("git diff failed: %w", err)
}

// StageFile runs `git add` for path.
func (g *Git) StageFile(ctx context.Context, path string) error {
	cmd := g.command(ctx, "add", "--", literalPathspec(path))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &StagingError{Path: path, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// RepositoryRoot returns the absolute top-level directory of the working tree.
func (g *Git) RepositoryRoot(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to locate repository root in %q: %w", g.Dir, err)
	}
	return filepath.Clean(out), nil
}

// HooksDir returns the absolute path of the directory git reads hooks from.
// It honours core.hooksPath and linked worktrees.
func (g *Git) HooksDir(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("failed to locate hooks directory in %q: %w", g.Dir, err)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(g.Dir, out)
	}
	return filepath.Clean(out), nil
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	cmd := g.command(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return "", fmt.Errorf("%v, detail: %s", err, detail)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
