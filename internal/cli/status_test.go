package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

func TestStatusCommand(t *testing.T) {
	t.Parallel()

	t.Run("reports the current branch and both inventories", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.CreateBranch("develop"))

		out, err := scene.Repo.RunCliCommandAndGetOutput("status")
		require.NoError(t, err, out)

		require.Contains(t, out, "On branch main (current)")
		require.Contains(t, out, "Local branches")
		require.Contains(t, out, "develop")
		require.Contains(t, out, "Remote branches (origin)")
		require.Contains(t, out, "Priority: main, master, develop")
		require.Contains(t, out, "A publish stays on main")
	})

	t.Run("warns about a detached head and names the landing branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		testhelpers.Must(scene.Repo.CreateBareRemote("origin"))
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))

		out, err := scene.Repo.RunCliCommandAndGetOutput("status")
		require.NoError(t, err, out)

		require.Contains(t, out, "HEAD is detached at")
		require.Contains(t, out, "A publish would land on main")

		// Status reports without resolving: HEAD stays detached.
		require.Empty(t, testhelpers.Must(scene.Repo.CurrentBranchName()))
	})

	t.Run("points at the creation fallback when no branch exists", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		require.NoError(t, scene.Repo.DeleteBranch("main"))

		out, err := scene.Repo.RunCliCommandAndGetOutput("status")
		require.NoError(t, err, out)

		require.Contains(t, out, "(none)")
		require.Contains(t, out, "a publish would create main")
	})
}
