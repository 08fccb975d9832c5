package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/config"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/github"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/utils"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues with your crestagit setup",
		Long: `Run diagnostic checks on the environment and the current repository.

Errors would block a publish and make doctor exit nonzero. Warnings are
degradations a publish can survive, such as an unreachable remote or
missing GitHub credentials.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

// runDoctor must keep working outside a repository, so it builds its own
// logger instead of going through runtime.GetContext.
func runDoctor(ctx context.Context) error {
	splog := tui.NewSplog()

	splog.Info("Running crestagit doctor...")
	splog.Newline()

	repoRoot, repoErr := git.GetRepoRoot()
	remote := config.DefaultRemote
	if repoErr == nil {
		if configured, err := config.GetRemote(repoRoot); err == nil {
			remote = configured
		}
	}

	var warnings []string
	var errors []string

	splog.Info("Environment:")
	warnings, errors = checkEnvironment(ctx, splog, warnings, errors)

	splog.Newline()
	splog.Info("Repository:")
	warnings, errors = checkRepository(ctx, splog, repoRoot, repoErr, remote, warnings, errors)

	if repoErr == nil {
		splog.Newline()
		splog.Info("Connectivity:")
		warnings, errors = checkConnectivity(ctx, splog, remote, warnings, errors)
	}

	// Summary
	splog.Newline()
	if len(errors) > 0 {
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(errors), len(warnings))
		for _, err := range errors {
			splog.Info("  ❌ %s", err)
		}
		for _, warn := range warnings {
			splog.Info("  ⚠️  %s", warn)
		}
		return fmt.Errorf("doctor found %d error(s)", len(errors))
	}
	if len(warnings) > 0 {
		splog.Info("Doctor found %d warning(s). Publishing should still work.", len(warnings))
		for _, warn := range warnings {
			splog.Info("  ⚠️  %s", warn)
		}
		return nil
	}
	splog.Info("✅ All checks passed. Your crestagit setup is healthy.")
	return nil
}

// checkEnvironment performs checks that do not need a repository
func checkEnvironment(ctx context.Context, splog *tui.Splog, warnings []string, errors []string) ([]string, []string) {
	gitVersion, err := exec.CommandContext(ctx, "git", "version").Output()
	if err != nil {
		errors = append(errors, "git is not installed or not in PATH")
		splog.Info("  ❌ git is not installed or not in PATH")
	} else {
		splog.Info("  ✅ %s", strings.TrimSpace(string(gitVersion)))
	}

	if _, err := github.ResolveToken(ctx); err != nil {
		warnings = append(warnings, "no GitHub credentials found")
		splog.Info("  ⚠️  no GitHub credentials found")
		splog.Tip("Set GITHUB_TOKEN or run 'gh auth login' to enable the API probe")
	} else {
		splog.Info("  ✅ GitHub credentials are available")
	}

	return warnings, errors
}

// checkRepository performs checks against the current repository
func checkRepository(ctx context.Context, splog *tui.Splog, repoRoot string, repoErr error, remote string, warnings []string, errors []string) ([]string, []string) {
	if repoErr != nil {
		errors = append(errors, "not in a git repository")
		splog.Info("  ❌ not in a git repository")
		return warnings, errors
	}
	splog.Info("  ✅ Current directory is inside a git repository")

	repo, err := git.OpenRepository(repoRoot)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to open repository: %v", err))
		splog.Info("  ❌ failed to open repository: %v", err)
		return warnings, errors
	}

	detached, err := repo.IsDetached()
	switch {
	case err != nil:
		errors = append(errors, fmt.Sprintf("failed to read HEAD: %v", err))
		splog.Info("  ❌ failed to read HEAD: %v", err)
	case detached:
		sha, shaErr := repo.HeadShortSHA()
		if shaErr != nil {
			sha = "unknown"
		}
		warnings = append(warnings, fmt.Sprintf("HEAD is detached at %s", sha))
		splog.Info("  ⚠️  HEAD is detached at %s, the next publish will resolve a branch first", sha)
	default:
		branchName, branchErr := repo.CurrentBranch()
		if branchErr != nil {
			errors = append(errors, fmt.Sprintf("failed to read current branch: %v", branchErr))
			splog.Info("  ❌ failed to read current branch: %v", branchErr)
			break
		}
		splog.Info("  ✅ On branch '%s'", branchName)

		upstream, _ := git.UpstreamBranch(ctx, branchName)
		if upstream == "" {
			warnings = append(warnings, fmt.Sprintf("branch '%s' has no upstream yet", branchName))
			splog.Info("  ⚠️  branch '%s' has no upstream yet, the first publish sets one", branchName)
		} else {
			splog.Info("  ✅ '%s' tracks %s", branchName, upstream)
		}
	}

	hasRemote, err := git.HasRemote(ctx, remote)
	if err != nil || !hasRemote {
		warnings = append(warnings, fmt.Sprintf("remote '%s' is not configured", remote))
		splog.Info("  ⚠️  remote '%s' is not configured", remote)
		return warnings, errors
	}

	remoteURL, err := git.RemoteURL(ctx, remote)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to read URL of remote '%s'", remote))
		splog.Info("  ⚠️  failed to read URL of remote '%s': %v", remote, err)
		return warnings, errors
	}
	if owner, repoName, parseErr := github.ParseRepoURL(remoteURL); parseErr != nil {
		warnings = append(warnings, fmt.Sprintf("remote '%s' is not a GitHub repository", remote))
		splog.Info("  ⚠️  remote '%s' is not a GitHub repository", remote)
	} else {
		splog.Info("  ✅ Remote '%s' is configured to GitHub (%s/%s)", remote, owner, repoName)
	}

	// A hand-added remote has no recorded HEAD, which is not worth a warning.
	if defaultBranch, defErr := git.DefaultRemoteBranch(ctx, remote); defErr == nil {
		priority, _ := config.GetBranchPriority(repoRoot)
		if utils.ContainsString(priority, defaultBranch) {
			splog.Info("  ✅ Remote HEAD points at '%s'", defaultBranch)
		} else {
			warnings = append(warnings, fmt.Sprintf("remote HEAD points at '%s', which is not in the branch priority", defaultBranch))
			splog.Info("  ⚠️  remote HEAD points at '%s', which is not in the branch priority (%s)", defaultBranch, strings.Join(priority, ", "))
		}
	}

	return warnings, errors
}

// checkConnectivity probes the remote and the GitHub API. Every failure here
// is a warning: a publish may still succeed once the network is back.
func checkConnectivity(ctx context.Context, splog *tui.Splog, remote string, warnings []string, errors []string) ([]string, []string) {
	hasRemote, err := git.HasRemote(ctx, remote)
	if err != nil || !hasRemote {
		splog.Info("  ⚠️  skipped, remote '%s' is not configured", remote)
		return warnings, errors
	}

	if err := git.ProbeRemote(ctx, remote); err != nil {
		warnings = append(warnings, fmt.Sprintf("remote '%s' is unreachable", remote))
		splog.Info("  ⚠️  remote '%s' is unreachable: %v", remote, err)
	} else {
		splog.Info("  ✅ Remote '%s' is reachable", remote)
	}

	client, err := github.NewClient(ctx, remote)
	if err != nil {
		splog.Info("  ⚠️  skipped the GitHub API probe: %v", err)
		return warnings, errors
	}
	probeCtx, cancel := context.WithTimeout(ctx, git.DefaultCommandTimeout)
	defer cancel()
	login, err := client.Viewer(probeCtx)
	if err != nil {
		warnings = append(warnings, "GitHub API probe failed")
		splog.Info("  ⚠️  GitHub API probe failed: %v", err)
	} else {
		owner, repoName := client.OwnerRepo()
		splog.Info("  ✅ GitHub API access as %s (%s/%s)", login, owner, repoName)
	}

	return warnings, errors
}
