package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

func TestFetch(t *testing.T) {
	t.Run("learns about branches pushed from elsewhere", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		bareDir, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))

		// Another clone publishes a branch directly into the bare remote
		require.NoError(t, scene.Repo.RunGitCommand("push", "origin", "main:develop"))
		// Wipe our tracking ref so only a fetch can bring it back
		require.NoError(t, scene.Repo.RunGitCommand("update-ref", "-d", "refs/remotes/origin/develop"))

		exists, err := git.RemoteBranchExists(context.Background(), "origin", "develop")
		require.NoError(t, err)
		require.False(t, exists)

		require.NoError(t, git.Fetch(context.Background(), "origin"))

		exists, err = git.RemoteBranchExists(context.Background(), "origin", "develop")
		require.NoError(t, err)
		require.True(t, exists)
		require.NotEmpty(t, bareDir)
	})

	t.Run("fails when the remote does not exist", func(t *testing.T) {
		testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.Fetch(context.Background(), "origin")
		require.Error(t, err)
	})
}

func TestHasRemote(t *testing.T) {
	t.Run("reports configured remotes only", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		has, err := git.HasRemote(context.Background(), "origin")
		require.NoError(t, err)
		require.False(t, has)

		_, err = scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		has, err = git.HasRemote(context.Background(), "origin")
		require.NoError(t, err)
		require.True(t, has)
	})
}

func TestRemoteURL(t *testing.T) {
	t.Run("returns the configured URL", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		bareDir, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		url, err := git.RemoteURL(context.Background(), "origin")
		require.NoError(t, err)
		require.Equal(t, bareDir, url)
	})
}

func TestProbeRemote(t *testing.T) {
	t.Run("succeeds against a reachable remote", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		require.NoError(t, git.ProbeRemote(context.Background(), "origin"))
	})

	t.Run("fails when the remote is gone", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.SetRemoteURL("origin", scene.Dir+"-gone.git"))

		err = git.ProbeRemote(context.Background(), "origin")
		require.Error(t, err)
	})
}

func TestUpstreamBranch(t *testing.T) {
	t.Run("empty without upstream, set after a tracked push", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		upstream, err := git.UpstreamBranch(context.Background(), "main")
		require.NoError(t, err)
		require.Empty(t, upstream)

		_, err = scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))

		upstream, err = git.UpstreamBranch(context.Background(), "main")
		require.NoError(t, err)
		require.Equal(t, "origin/main", upstream)
	})
}
