package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

func TestPublishCommand(t *testing.T) {
	t.Parallel()

	t.Run("publishes staged work and reports success", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("widget", "widget", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-m", "add widget")
		require.NoError(t, err, out)
		require.Contains(t, out, "Published main to origin")

		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"add widget", "1"})
		require.Equal(t, "origin/main", scene.Repo.UpstreamOf("main"))
	})

	t.Run("exits zero when there is nothing to commit", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-m", "noop")
		require.NoError(t, err, out)
		require.Contains(t, out, "Nothing to commit on main")

		require.Empty(t, testhelpers.Must(scene.Repo.ListRemoteBranches("origin")))
	})

	t.Run("stages only the requested path", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("keep", "keep", true))
		require.NoError(t, scene.Repo.CreateChange("skip", "skip", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-f", "keep_test.txt", "-m", "partial")
		require.NoError(t, err, out)

		shown := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("show", "--name-only", "--format=", "HEAD"))
		require.Contains(t, shown, "keep_test.txt")
		require.NotContains(t, shown, "skip_test.txt")

		porcelain := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("status", "--porcelain"))
		require.Contains(t, porcelain, "skip_test.txt")
	})

	t.Run("exits nonzero and names the kind when staging fails", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-f", "missing.txt", "-m", "broken")
		require.Error(t, err)
		require.Contains(t, out, "Publish failed (staging)")
		require.Contains(t, out, "failed to stage missing.txt")

		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"1"})
	})

	t.Run("exits nonzero and names the kind when the push is rejected", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.RunGitCommand("reset", "--hard", "HEAD~1"))
		require.NoError(t, scene.Repo.CreateChange("3", "3", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-m", "3")
		require.Error(t, err)
		require.Contains(t, out, "Publish failed (push)")

		// The commit survives even though the push was refused.
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"3", "1"})
		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"2", "1"})
	})

	t.Run("publishes from a detached head", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		require.NoError(t, scene.Repo.CreateChange("rescued", "rescued", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-m", "rescued work")
		require.NoError(t, err, out)
		require.Contains(t, out, "Published main to origin")

		testhelpers.ExpectCurrentBranch(t, scene.Repo, "main")
		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"rescued work", "1"})
	})

	t.Run("generates a timestamped message when none is given", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("widget", "widget", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput()
		require.NoError(t, err, out)

		messages := testhelpers.Must(scene.Repo.ListCurrentBranchCommitMessages())
		require.Regexp(t, `^auto-commit \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, messages[0])
	})

	t.Run("quiet flag silences console output", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("widget", "widget", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("-q", "-m", "silent")
		require.NoError(t, err, out)
		require.Empty(t, strings.TrimSpace(out))

		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"silent", "1"})
	})

	t.Run("test branch flag checks out the branch without committing", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("wip", "wip", true))

		out, err := scene.Repo.RunCliCommandAndGetOutput("--test-branch", "develop")
		require.NoError(t, err, out)
		require.Contains(t, out, "develop is checked out and ready")

		testhelpers.ExpectCurrentBranch(t, scene.Repo, "develop")
		testhelpers.ExpectCommits(t, scene.Repo, "develop", []string{"1"})

		porcelain := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("status", "--porcelain"))
		require.Contains(t, porcelain, "wip_test.txt")
	})

	t.Run("version flag reports the build", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		out, err := scene.Repo.RunCliCommandAndGetOutput("--version")
		require.NoError(t, err, out)
		require.Contains(t, out, "crestagit version dev")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)

		_, err := scene.Repo.RunCliCommandAndGetOutput("unexpected-arg")
		require.Error(t, err)
	})
}
