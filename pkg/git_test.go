package versiongate

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a git repository with version.md committed at 1.2.3.
// The test is skipped if git is not available.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if err := CheckGit(context.Background()); err != nil {
		t.Skip("git not available:", err)
	}

	dir := t.TempDir()
	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	runGit("init")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "Test User")
	runGit("config", "commit.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultVersionFile), []byte("1.2.3\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0644))
	runGit("add", ".")
	runGit("commit", "-m", "initial")
	return dir
}

func stagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	cmd := exec.Command("git", "diff", "--cached", "--name-only")
	cmd.Dir = dir
	out, err := cmd.Output()
	require.NoError(t, err)
	return strings.Fields(string(out))
}

func TestGitHasStagedChange(t *testing.T) {
	dir := setupTestRepo(t)
	git := NewGit(dir, nil)
	ctx := context.Background()

	changed, err := git.HasStagedChange(ctx, DefaultVersionFile)
	require.NoError(t, err)
	assert.False(t, changed, "clean repository has no staged change")

	// An unstaged edit does not count.
	path := filepath.Join(dir, DefaultVersionFile)
	require.NoError(t, os.WriteFile(path, []byte("1.2.4\n"), 0644))
	changed, err = git.HasStagedChange(ctx, DefaultVersionFile)
	require.NoError(t, err)
	assert.False(t, changed, "unstaged edit must not count as staged")

	require.NoError(t, git.StageFile(ctx, DefaultVersionFile))
	changed, err = git.HasStagedChange(ctx, DefaultVersionFile)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{DefaultVersionFile}, stagedFiles(t, dir))
}

func TestGitHasStagedChangeIsScopedToPath(t *testing.T) {
	dir := setupTestRepo(t)
	git := NewGit(dir, nil)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# changed\n"), 0644))
	require.NoError(t, git.StageFile(ctx, "README.md"))

	changed, err := git.HasStagedChange(ctx, DefaultVersionFile)
	require.NoError(t, err)
	assert.False(t, changed)
}

// TestGateWithGlobShapedVersionFile checks that bracketed names are matched
// literally: staging v1.md must not satisfy the gate for v[12].md, and the
// bump must not stage v2.md.
func TestGateWithGlobShapedVersionFile(t *testing.T) {
	dir := setupTestRepo(t)
	ctx := context.Background()
	versionFile := "v[12].md"
	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, versionFile), []byte("1.0.0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.md"), []byte("one\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v2.md"), []byte("two\n"), 0644))
	runGit("add", ".")
	runGit("commit", "-m", "add glob-shaped files")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.md"), []byte("one, edited\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v2.md"), []byte("two, edited\n"), 0644))
	runGit("add", "v1.md")

	git := NewGit(dir, nil)
	changed, err := git.HasStagedChange(ctx, versionFile)
	require.NoError(t, err)
	assert.False(t, changed, "a staged v1.md must not count as a change to %s", versionFile)

	res, err := New(dir, versionFile, git).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlockAndBump, res.Outcome)
	assert.Equal(t, "1.0.1", res.NewVersion)

	data, err := os.ReadFile(filepath.Join(dir, versionFile))
	require.NoError(t, err)
	assert.Equal(t, "1.0.1\n", string(data))
	assert.ElementsMatch(t, []string{"v1.md", versionFile}, stagedFiles(t, dir))
}

func TestGitStageFileFailure(t *testing.T) {
	dir := setupTestRepo(t)
	git := NewGit(dir, nil)

	err := git.StageFile(context.Background(), "does-not-exist.md")
	require.Error(t, err)
	assert.True(t, IsStagingFailure(err))

	var stagingErr *StagingError
	require.ErrorAs(t, err, &stagingErr)
	assert.Equal(t, "does-not-exist.md", stagingErr.Path)
	assert.NotEmpty(t, stagingErr.Stderr)
}

func TestGitRepositoryRootAndHooksDir(t *testing.T) {
	dir := setupTestRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0755))
	ctx := context.Background()

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	root, err := NewGit(sub, nil).RepositoryRoot(ctx)
	require.NoError(t, err)
	root, err = filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, root)

	hooks, err := NewGit(dir, nil).HooksDir(ctx)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(hooks))
	assert.Equal(t, "hooks", filepath.Base(hooks))
}

// TestGateWithGit runs the gate against a real repository: bump, then pass.
func TestGateWithGit(t *testing.T) {
	dir := setupTestRepo(t)
	ctx := context.Background()
	gate := New(dir, DefaultVersionFile, NewGit(dir, nil))

	res, err := gate.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlockAndBump, res.Outcome)
	assert.Equal(t, []string{DefaultVersionFile}, stagedFiles(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, DefaultVersionFile))
	require.NoError(t, err)
	assert.Equal(t, "1.2.4\n", string(data))

	res, err = gate.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomePass, res.Outcome)

	data, err = os.ReadFile(filepath.Join(dir, DefaultVersionFile))
	require.NoError(t, err)
	assert.Equal(t, "1.2.4\n", string(data), "second run must not bump again")
}
