package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

func TestOpenRepository(t *testing.T) {
	t.Run("finds the root from a subdirectory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		subDir := filepath.Join(scene.Dir, "data", "daily")
		require.NoError(t, os.MkdirAll(subDir, 0750))

		repo, err := git.OpenRepository(subDir)
		require.NoError(t, err)
		require.Equal(t, resolveSymlinks(t, scene.Dir), resolveSymlinks(t, repo.Root()))
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := git.OpenRepository(tmpDir)
		require.Error(t, err)
	})
}

func TestRepositoryHeadInspection(t *testing.T) {
	t.Run("reports branch state on a branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		detached, err := repo.IsDetached()
		require.NoError(t, err)
		require.False(t, detached)

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("reports detached state with the commit id", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		detached, err := repo.IsDetached()
		require.NoError(t, err)
		require.True(t, detached)

		_, err = repo.CurrentBranch()
		require.ErrorIs(t, err, errors.ErrNotOnBranch)

		sha, err := repo.HeadShortSHA()
		require.NoError(t, err)
		require.Len(t, sha, 7)
	})

	t.Run("lists local branch names", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("develop"))

		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		names, err := repo.LocalBranchNames()
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"main", "develop"}, names)
	})
}

// resolveSymlinks normalizes paths for comparison; temp dirs are symlinked
// on some platforms.
func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
