// Package main implements a git pre-commit hook that bumps the patch version
// in a version file and blocks the commit whenever the file is not staged.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	versiongate "github.com/bcomnes/versiongate/pkg"
)

func usage(flags *pflag.FlagSet, w io.Writer) {
	msg := `Usage:
  versiongate [options]

Run from a git pre-commit hook. If the version file (default: ./version.md) has no staged change,
its patch version is incremented, the file is staged, and the commit is aborted so it can be retried.
If the version file is already staged the commit proceeds.

Examples:
  versiongate
  versiongate --version-file VERSION
  versiongate --install-hook

Exit status:
  0  the commit may proceed
  1  the commit is blocked (version bumped, missing or malformed version file, or staging failure)

Options:
`
	fmt.Fprint(w, msg)
	flags.SetOutput(w)
	flags.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Define flags.
	flags := pflag.NewFlagSet("versiongate", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	versionFile := flags.StringP("version-file", "f", "", "Path of the version file, relative to the repository root (default \""+versiongate.DefaultVersionFile+"\")")
	repo := flags.StringP("repo", "C", "", "Repository root (default: discovered from the current directory)")
	dryRun := flags.BoolP("dry", "n", false, "Report what would happen without modifying the version file or the index")
	installHook := flags.Bool("install-hook", false, "Install versiongate as the repository pre-commit hook and exit")
	force := flags.Bool("force", false, "With --install-hook, replace an existing pre-commit hook")
	noColor := flags.Bool("no-color", false, "Disable colored output")
	verbose := flags.BoolP("verbose", "v", false, "Log debug information to stderr")
	showVersion := flags.Bool("version", false, "Show CLI version and exit")
	help := flags.BoolP("help", "h", false, "Show help message and exit")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		usage(flags, stderr)
		return 1
	}

	if *help {
		usage(flags, stderr)
		return 0
	}
	if *showVersion {
		fmt.Fprintln(stdout, "versiongate CLI version", Version)
		return 0
	}

	if flags.NArg() != 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", flags.Args())
		usage(flags, stderr)
		return 1
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Resolve the repository root and config.
	root := *repo
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		if root, err = resolveRoot(ctx, cwd, logger); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	}
	logger.Debug("repository root", "root", root)

	cfg, err := versiongate.LoadConfig(root)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	vf, err := cfg.ResolveVersionFile(*versionFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	useColor := !color.NoColor
	switch {
	case *noColor, cfg.Color == versiongate.ColorNever:
		useColor = false
	case cfg.Color == versiongate.ColorAlways:
		useColor = true
	}
	reporter := versiongate.NewReporter(stdout, stderr, useColor)

	if err := versiongate.CheckGit(ctx); err != nil {
		reporter.Failure(err)
		return 1
	}
	git := versiongate.NewGit(root, logger)

	if *installHook {
		// Only an explicit flag is baked into the hook; config and env stay live.
		hookFile := ""
		if *versionFile != "" {
			hookFile = vf
		}
		hookPath, err := versiongate.InstallHook(ctx, git, versiongate.HookOptions{
			VersionFile: hookFile,
			Force:       *force,
		})
		if err != nil {
			reporter.Failure(err)
			return 1
		}
		reporter.Infof("Installed pre-commit hook at %s", hookPath)
		return 0
	}

	gate := &versiongate.Gate{
		Root:        root,
		VersionFile: vf,
		VCS:         git,
		DryRun:      *dryRun,
		Reporter:    reporter,
		Logger:      logger,
	}
	res, err := gate.Evaluate(ctx)
	logger.Debug("gate finished", "outcome", res.Outcome.String(), "old", res.OldVersion, "new", res.NewVersion)

	if *dryRun && err == nil {
		fmt.Fprintln(stdout, "Dry run complete, no files were modified.")
	}
	return versiongate.ExitCode(res, err)
}

// resolveRoot asks git for the working tree top level and falls back to
// walking up to the nearest .git when git cannot answer.
func resolveRoot(ctx context.Context, cwd string, logger *slog.Logger) (string, error) {
	root, err := versiongate.NewGit(cwd, logger).RepositoryRoot(ctx)
	if err == nil {
		return root, nil
	}
	logger.Debug("git could not resolve the repository root", "error", err)
	return versiongate.FindRoot(cwd)
}
