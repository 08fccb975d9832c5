package publisher_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/publisher"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/resolver"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

func newTestPublisher() *publisher.CommitPublisher {
	splog := tui.NewSplog()
	splog.SetQuiet(true)
	runner := git.NewRealRunner()
	res := resolver.New(runner, splog, nil, "origin")
	return publisher.New(runner, res, splog, tui.NewSimplePublishUI(splog), "origin")
}

// recordingUI notes whether the phase display was ever started.
type recordingUI struct {
	started bool
}

func (r *recordingUI) Start([]tui.PhaseItem)                  { r.started = true }
func (r *recordingUI) UpdatePhase(int, string, string, error) {}
func (r *recordingUI) Complete(string)                        {}

// brokenRunner fails the preflight status check; any other call panics.
type brokenRunner struct {
	git.Runner
}

func (b *brokenRunner) HasUncommittedChanges(_ context.Context) (bool, error) {
	return false, crestaerrors.NewGitCommandError("git", []string{"status", "--porcelain"}, "", "",
		fmt.Errorf("executable file not found in $PATH"))
}

func TestPublish(t *testing.T) {
	t.Run("commits and pushes staged work on the current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("widget", "widget", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{Message: "add widget"})
		require.NoError(t, err)
		require.Equal(t, publisher.Result{Branch: "main", Committed: true, Pushed: true}, result)

		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"add widget", "1"})
		require.Equal(t, "origin/main", scene.Repo.UpstreamOf("main"))
	})

	t.Run("stages only the requested paths", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("keep", "keep", true))
		require.NoError(t, scene.Repo.CreateChange("skip", "skip", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{
			Message: "keep only",
			Files:   []string{"keep_test.txt"},
		})
		require.NoError(t, err)
		require.True(t, result.Pushed)

		committed := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("show", "--name-only", "--format=", "HEAD"))
		require.Contains(t, committed, "keep_test.txt")
		require.NotContains(t, committed, "skip_test.txt")

		status := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("status", "--porcelain"))
		require.Contains(t, status, "skip_test.txt")
	})

	t.Run("reports nothing to commit on a clean tree", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{})
		require.NoError(t, err)
		require.Equal(t, publisher.Result{Branch: "main", Reason: "nothing to commit"}, result)
		require.Empty(t, testhelpers.Must(scene.Repo.ListRemoteBranches("origin")))
	})

	t.Run("generates a timestamped message when none is given", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChange("auto", "auto", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{})
		require.NoError(t, err)
		require.True(t, result.Committed)

		messages := testhelpers.Must(scene.Repo.ListCurrentBranchCommitMessages())
		require.Regexp(t, `^auto-commit \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, messages[0])
	})

	t.Run("names the offending path when staging fails", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{
			Files: []string{"does-not-exist.txt"},
		})
		require.Error(t, err)

		var stagingErr *crestaerrors.StagingError
		require.ErrorAs(t, err, &stagingErr)
		require.Equal(t, "does-not-exist.txt", stagingErr.Path)
		require.Equal(t, crestaerrors.KindStaging, result.ErrorKind)
		require.Equal(t, "main", result.Branch)
		require.False(t, result.Committed)
		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"1"})
	})

	t.Run("keeps the commit when the remote rejects the push", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.RunGitCommand("reset", "--hard", "HEAD~1"))
		require.NoError(t, scene.Repo.CreateChange("3", "3", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{Message: "3"})
		require.Error(t, err)
		require.ErrorIs(t, err, crestaerrors.ErrPushRejected)
		require.Equal(t, crestaerrors.KindPush, result.ErrorKind)
		require.True(t, result.Committed)
		require.False(t, result.Pushed)

		testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"3", "1"})
		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"2", "1"})
	})

	t.Run("force push rewrites remote history", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.RunGitCommand("reset", "--hard", "HEAD~1"))
		require.NoError(t, scene.Repo.CreateChange("3", "3", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{Message: "3", Force: true})
		require.NoError(t, err)
		require.True(t, result.Pushed)
		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"3", "1"})
	})

	t.Run("publishes from a detached head", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		require.NoError(t, scene.Repo.CreateChange("rescued", "rescued", true))

		result, err := newTestPublisher().Publish(context.Background(), publisher.Options{Message: "rescued work"})
		require.NoError(t, err)
		require.Equal(t, publisher.Result{Branch: "main", Committed: true, Pushed: true}, result)

		testhelpers.ExpectCurrentBranch(t, scene.Repo, "main")
		testhelpers.ExpectCommits(t, scene.Repo, "origin/main", []string{"rescued work", "1"})
	})

	t.Run("fails before any phase when git is unusable", func(t *testing.T) {
		splog := tui.NewSplog()
		splog.SetQuiet(true)
		runner := &brokenRunner{}
		ui := &recordingUI{}
		pub := publisher.New(runner, resolver.New(runner, splog, nil, "origin"), splog, ui, "origin")

		result, err := pub.Publish(context.Background(), publisher.Options{})
		require.Error(t, err)
		require.Equal(t, crestaerrors.KindToolInvocation, result.ErrorKind)
		require.False(t, ui.started)
	})
}

func TestDefaultMessage(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 24, 14, 3, 9, 0, time.UTC)
	require.Equal(t, "auto-commit 2026-08-24 14:03:09", publisher.DefaultMessage(now))
}
