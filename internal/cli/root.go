package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/publisher"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/runtime"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
)

// NewRootCmd creates the root command. Publishing is the root behavior:
// resolve a branch, stage, commit, push.
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		message    string
		files      []string
		testBranch string
		force      bool
		quiet      bool
	)

	rootCmd := &cobra.Command{
		Use:   "crestagit",
		Short: "Commit and push in one step, even from a detached HEAD",
		Long: `Crestagit stages, commits, and pushes in a single run. When HEAD is
detached it first resolves a real branch to publish to, preferring main,
master, and develop in that order, so scheduled jobs and editor sessions
never strand commits on an unnamed ref.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer func() { _ = rctx.Close() }()
			rctx.Splog.SetQuiet(quiet)

			if testBranch != "" {
				return runBranchTest(cmd, rctx, testBranch)
			}

			if message == "" {
				message, err = defaultOrPromptedMessage()
				if err != nil {
					return err
				}
			}

			result, err := rctx.Publisher.Publish(cmd.Context(), publisher.Options{
				Message: message,
				Files:   files,
				Force:   force,
			})
			if err != nil {
				if result.ErrorKind != crestaerrors.KindNone {
					rctx.Splog.Error("Publish failed (%s)", result.ErrorKind)
				} else {
					rctx.Splog.Error("Publish failed")
				}
				return err
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&message, "message", "m", "", "Commit message. Prompts on a terminal, otherwise a timestamped message is generated.")
	rootCmd.Flags().StringArrayVarP(&files, "files", "f", nil, "Stage only this path. Repeatable. Omit to stage everything.")
	rootCmd.Flags().StringVarP(&testBranch, "test-branch", "t", "", "Check that the named branch can be resolved and checked out, then exit without committing.")
	rootCmd.Flags().BoolVar(&force, "force", false, "Force push, overwriting the remote branch.")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console output.")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDoctorCmd())

	return rootCmd
}

// runBranchTest exercises branch resolution and checkout for a single name
// without touching the working tree or creating commits.
func runBranchTest(cmd *cobra.Command, rctx *runtime.Context, branchName string) error {
	splog := rctx.Splog
	splog.Info("Testing branch availability for %s", branchName)

	name, err := rctx.Resolver.EnsureAvailable(cmd.Context(), branchName)
	if err != nil {
		splog.Error("Branch %s is not usable: %v", branchName, err)
		return err
	}

	splog.Info("✅ %s is checked out and ready to publish to", name)
	return nil
}

// defaultOrPromptedMessage asks for a commit message on a terminal and falls
// back to a generated timestamped one everywhere else.
func defaultOrPromptedMessage() (string, error) {
	generated := publisher.DefaultMessage(time.Now())
	if !tui.IsTTY() {
		return generated, nil
	}

	message, err := tui.PromptCommitMessage(generated)
	if err != nil {
		if errors.Is(err, tui.ErrInteractiveDisabled) {
			return generated, nil
		}
		return "", err
	}
	if message == "" {
		return generated, nil
	}
	return message, nil
}
