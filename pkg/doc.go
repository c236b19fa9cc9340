// Package versiongate provides a library for enforcing version bumps from a git pre-commit hook.
//
// It provides functionalities for:
//   - Checking whether a version file has a staged change relative to HEAD.
//   - Parsing a strict MAJOR.MINOR.PATCH version and incrementing its patch component.
//   - Rewriting the version file and staging it again so the retried commit carries the bump.
//   - Loading an optional .versiongate.yaml config and installing the pre-commit hook.
//
// A Gate evaluates one commit attempt. When the version file is already staged the
// commit may proceed (OutcomePass, exit 0). Otherwise the file is bumped and staged
// and the commit is blocked (OutcomeBlockAndBump, exit 1) so the developer commits
// again with the new version included.
//
// The version-control system is reached through the VCS interface; Git is the
// implementation backed by the git binary.
//
// Usage Example:
//
//	import (
//	    "context"
//	    "os"
//
//	    versiongate "github.com/bcomnes/versiongate/pkg"
//	)
//
//	func main() {
//	    git := versiongate.NewGit(".", nil)
//	    gate := versiongate.New(".", "version.md", git)
//	    gate.Reporter = versiongate.NewReporter(os.Stdout, os.Stderr, false)
//	    res, err := gate.Evaluate(context.Background())
//	    os.Exit(versiongate.ExitCode(res, err))
//	}
//
// For additional details and API documentation, see https://pkg.go.dev/github.com/bcomnes/versiongate.
package versiongate
