// Package main implements the versiongate CLI tool.
//
// The versiongate tool is a git pre-commit hook that enforces a version bump on every commit.
// It asks git whether the version file (default "./version.md") has a staged change. If it
// does, the commit proceeds. If it does not, the tool reads the file, which must hold exactly
// one MAJOR.MINOR.PATCH line, increments the patch component, rewrites and stages the file,
// and exits with status 1 so the commit is aborted. Committing again picks up the new version.
//
// Command Usage:
//
//	versiongate [flags]
//
// Flags:
//
//	-f, --version-file: Path of the version file relative to the repository root.
//	                    (Defaults to "version.md", or the version_file key of .versiongate.yaml,
//	                    or the VERSIONGATE_VERSION_FILE environment variable.)
//	-C, --repo:         Repository root. Discovered from the working directory by default.
//	-n, --dry:          Report what would happen without writing or staging anything.
//	--install-hook:     Write a pre-commit hook that runs versiongate and exit.
//	--force:            With --install-hook, replace a pre-commit hook not written by versiongate.
//	--no-color:         Disable colored output.
//	-v, --verbose:      Log debug information to stderr.
//	--version:          Displays the version of the versiongate CLI tool and exits.
//
// Config file:
//
// An optional .versiongate.yaml in the repository root may set:
//
//	version_file: VERSION
//	color: never   # auto, always or never
//
// Examples:
//
//	# Install the hook once per clone
//	versiongate --install-hook
//
//	# version.md holds 1.2.3 and is not staged
//	git commit -m "fix parser"
//	# version.md was not changed. Auto-incrementing patch version...
//	# Updated version.md from 1.2.3 to 1.2.4.
//	# Please commit again with the new version.
//
//	# Retry: version.md is staged now, so the commit goes through
//	git commit -m "fix parser"
//	# version.md is already updated, continuing commit...
//
//	# Preview without touching the repository
//	versiongate --dry
//
// For more detailed API documentation, please see the documentation in the "pkg" package
// or visit [PkgGoDev](https://pkg.go.dev/github.com/bcomnes/versiongate).
package main
