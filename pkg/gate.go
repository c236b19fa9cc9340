package versiongate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Outcome is the terminal state of a gate evaluation.
type Outcome int

const (
	// OutcomePass lets the commit proceed; nothing was modified.
	OutcomePass Outcome = iota
	// OutcomeBlockAndBump blocks the commit after bumping and staging the version file.
	OutcomeBlockAndBump
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeBlockAndBump:
		return "block-and-bump"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result holds metadata about a gate evaluation.
type Result struct {
	Outcome     Outcome
	VersionFile string // Repository-relative path of the version file.
	OldVersion  string // Trimmed file content before the bump. Empty on pass.
	NewVersion  string // Version written (or that would be written on a dry run). Empty on pass.
	DryRun      bool
}

// ExitCode maps the result of Evaluate onto the hook exit status:
// 0 lets the commit proceed and 1 blocks it.
func ExitCode(res Result, err error) int {
	if err != nil {
		return 1
	}
	if res.Outcome == OutcomePass {
		return 0
	}
	return 1
}

// Gate enforces that every commit carries a change to the version file.
type Gate struct {
	Root        string // Repository working tree root.
	VersionFile string // Version file path relative to Root.
	VCS         VCS
	DryRun      bool
	Reporter    *Reporter // Optional.
	Logger      *slog.Logger
}

// New returns a Gate for the version file at versionFile inside root.
func New(root, versionFile string, vcs VCS) *Gate {
	return &Gate{Root: root, VersionFile: versionFile, VCS: vcs}
}

func (g *Gate) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

// Evaluate runs one check-then-act cycle.
//
// If the version file already has a staged change the result is OutcomePass.
// Otherwise the file is parsed, its patch component incremented, the file
// rewritten and staged, and the result is OutcomeBlockAndBump. Missing or
// malformed files produce a FileMissingError or MalformedVersionError without
// touching anything. A staging failure returns a StagingError and leaves the
// rewritten file in place. Errors are also written to the Reporter.
func (g *Gate) Evaluate(ctx context.Context) (Result, error) {
	res, err := g.evaluate(ctx)
	if err != nil {
		g.Reporter.Failure(err)
	}
	return res, err
}

func (g *Gate) evaluate(ctx context.Context) (Result, error) {
	res := Result{VersionFile: g.VersionFile, DryRun: g.DryRun}
	log := g.logger().With("version_file", g.VersionFile)

	if g.VCS == nil {
		return res, errors.New("no version-control collaborator configured")
	}

	// 1. Staged-change check
	changed, err := g.VCS.HasStagedChange(ctx, g.VersionFile)
	if err != nil {
		return res, fmt.Errorf("checking staged changes for %s: %w", g.VersionFile, err)
	}
	log.Debug("staged-change check", "changed", changed)

	if changed {
		res.Outcome = OutcomePass
		g.Reporter.Pass(g.VersionFile)
		return res, nil
	}

	g.Reporter.Bumping(g.VersionFile)

	// 2. Read and parse the current version
	current, mode, err := g.readVersion()
	if err != nil {
		return res, err
	}
	res.OldVersion = current

	parsed, err := ParseVersion(current)
	if err != nil {
		log.Debug("version parse failed", "error", err)
		return res, &MalformedVersionError{Path: g.VersionFile, Content: current}
	}

	// 3. Bump
	next := parsed.BumpPatch()
	if next.Compare(parsed) <= 0 {
		return res, fmt.Errorf("bumped version %s does not sort after %s", next, parsed)
	}
	res.NewVersion = next.String()
	res.Outcome = OutcomeBlockAndBump

	if g.DryRun {
		log.Debug("dry run, skipping write and stage", "old", res.OldVersion, "new", res.NewVersion)
		g.Reporter.WouldBump(g.VersionFile, res.OldVersion, res.NewVersion)
		return res, nil
	}

	// 4. Rewrite and stage
	if err := g.writeVersion(res.NewVersion, mode); err != nil {
		return res, err
	}
	log.Info("version file rewritten", "old", res.OldVersion, "new", res.NewVersion)

	if err := g.VCS.StageFile(ctx, g.VersionFile); err != nil {
		var stagingErr *StagingError
		if !errors.As(err, &stagingErr) {
			err = &StagingError{Path: g.VersionFile, Err: err}
		}
		return res, err
	}

	g.Reporter.Bumped(g.VersionFile, res.OldVersion, res.NewVersion)
	return res, nil
}

func (g *Gate) path() string {
	return filepath.Join(g.Root, g.VersionFile)
}

// readVersion returns the trimmed content of the version file and its mode.
func (g *Gate) readVersion() (string, fs.FileMode, error) {
	path := g.path()
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", 0, &FileMissingError{Path: g.VersionFile}
		}
		return "", 0, fmt.Errorf("failed to stat version file: %w", err)
	}
	if info.IsDir() {
		return "", 0, &FileMissingError{Path: g.VersionFile}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read version file: %w", err)
	}
	return strings.TrimSpace(string(data)), info.Mode().Perm(), nil
}

// writeVersion overwrites the version file with version and a trailing newline.
func (g *Gate) writeVersion(version string, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(g.path(), []byte(version+"\n"), mode); err != nil {
		return fmt.Errorf("failed to write version file %q: %w", g.VersionFile, err)
	}
	return nil
}
