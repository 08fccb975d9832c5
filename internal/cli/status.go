package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/runtime"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui/style"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show HEAD state, branch inventories, and where a publish would land",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Close() }()

			return runStatus(cmd, rctx)
		},
	}
}

// runStatus reports without mutating: no fetch, no checkout, no branch
// creation.
func runStatus(cmd *cobra.Command, rctx *runtime.Context) error {
	ctx := cmd.Context()
	splog := rctx.Splog

	detached, err := rctx.Resolver.IsDetached(ctx)
	if err != nil {
		return err
	}

	var current string
	if detached {
		sha, shaErr := rctx.Runner.HeadShortSHA(ctx)
		if shaErr != nil {
			sha = "unknown"
		}
		splog.Warn("HEAD is detached at %s", sha)
	} else {
		current, err = rctx.Runner.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		splog.Info("On branch %s", style.ColorBranchName(current, true))
	}

	inv, err := rctx.Resolver.ListBranches(ctx)
	if err != nil {
		return err
	}

	splog.Newline()
	splog.Info("%s:", style.ColorCyan("Local branches"))
	if len(inv.Local) == 0 {
		splog.Info("  %s", style.ColorDim("(none)"))
	}
	for _, name := range inv.Local {
		splog.Info("  ▸ %s", style.ColorBranchName(name, name == current))
	}

	splog.Newline()
	splog.Info("%s (%s):", style.ColorCyan("Remote branches"), rctx.Remote)
	if len(inv.Remote) == 0 {
		splog.Info("  %s", style.ColorDim("(none)"))
	}
	for _, name := range inv.Remote {
		splog.Info("  ▸ %s", name)
	}

	splog.Newline()
	splog.Info("%s: %s", style.ColorCyan("Priority"), strings.Join(rctx.Resolver.Priority(), ", "))

	if !detached {
		splog.Info("A publish stays on %s", style.ColorBranchName(current, true))
		return nil
	}

	target, err := rctx.Resolver.SelectBranch(inv)
	if err != nil {
		fallback := rctx.Resolver.Priority()[0]
		splog.Info("No branch exists yet, a publish would create %s", style.ColorBranchName(fallback, false))
		return nil
	}
	splog.Info("A publish would land on %s", style.ColorBranchName(target, false))
	return nil
}
