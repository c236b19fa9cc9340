package versiongate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// HookMarker identifies pre-commit hooks written by InstallHook.
const HookMarker = "# managed by versiongate"

// HookOptions configures InstallHook.
type HookOptions struct {
	// Command is the executable the hook runs. Defaults to "versiongate".
	Command string
	// VersionFile is passed through as --version-file when it differs from
	// DefaultVersionFile.
	VersionFile string
	// Force replaces a pre-commit hook that was not written by InstallHook.
	Force bool
}

// HookScript renders the pre-commit hook body for opts.
func HookScript(opts HookOptions) string {
	command := opts.Command
	if command == "" {
		command = "versiongate"
	}
	args := []string{shellQuote(command)}
	if opts.VersionFile != "" && opts.VersionFile != DefaultVersionFile {
		args = append(args, "--version-file", shellQuote(filepath.ToSlash(opts.VersionFile)))
	}
	return fmt.Sprintf(`#!/bin/sh
%s
exec %s "$@"
`, HookMarker, strings.Join(args, " "))
}

// InstallHook writes the pre-commit hook into the hooks directory of the
// repository managed by git and returns its path.
func InstallHook(ctx context.Context, git *Git, opts HookOptions) (string, error) {
	dir, err := git.HooksDir(ctx)
	if err != nil {
		return "", err
	}
	hookPath := filepath.Join(dir, "pre-commit")

	existing, err := os.ReadFile(hookPath)
	switch {
	case err == nil:
		if !bytes.Contains(existing, []byte(HookMarker)) && !opts.Force {
			return hookPath, fmt.Errorf("%w: %s (use --force to replace it)", ErrHookExists, hookPath)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("failed to read existing hook %q: %w", hookPath, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %v", dir, err)
	}
	if err := os.WriteFile(hookPath, []byte(HookScript(opts)), 0755); err != nil {
		return "", fmt.Errorf("failed to write hook %q: %w", hookPath, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(hookPath, 0755); err != nil {
		return "", fmt.Errorf("failed to make hook %q executable: %w", hookPath, err)
	}
	return hookPath, nil
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
