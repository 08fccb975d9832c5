package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// CurrentBranch returns the name of the checked-out branch. It returns
// ErrNotOnBranch when HEAD is detached.
func CurrentBranch(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	if output == "" {
		return "", crestaerrors.ErrNotOnBranch
	}
	return output, nil
}

// IsDetachedHead reports whether HEAD points at a commit instead of a branch.
// An unborn branch (fresh repository before the first commit) is not detached.
func IsDetachedHead(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "branch", "--show-current")
	if err != nil {
		return false, fmt.Errorf("failed to inspect HEAD: %w", err)
	}
	return output == "", nil
}

// LocalBranches returns the names of all local branches, freshly queried.
func LocalBranches(ctx context.Context) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", err)
	}
	return lines, nil
}

// RemoteBranches returns the branch names known on the given remote, with the
// remote prefix stripped. The symbolic HEAD entry is excluded.
func RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "branch", "-r", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}

	prefix := remote + "/"
	var names []string
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		name := strings.TrimPrefix(line, prefix)
		if name == "" || name == "HEAD" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// LocalBranchExists checks whether refs/heads/<branchName> exists
func LocalBranchExists(ctx context.Context, branchName string) (bool, error) {
	return refExists(ctx, "refs/heads/"+branchName)
}

// RemoteBranchExists checks whether the remote-tracking ref for branchName exists
func RemoteBranchExists(ctx context.Context, remote, branchName string) (bool, error) {
	return refExists(ctx, "refs/remotes/"+remote+"/"+branchName)
}

// refExists verifies a fully qualified ref. show-ref exits 1 for a missing
// ref, which is an answer rather than a failure.
func refExists(ctx context.Context, ref string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "show-ref", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify ref %s: %w", ref, err)
}

// HeadShortSHA returns the abbreviated commit id of HEAD
func HeadShortSHA(ctx context.Context) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	return output, nil
}

// DefaultRemoteBranch resolves the branch the remote HEAD points at, such as
// "main" for origin/HEAD -> origin/main. Returns an error when the remote has
// no recorded HEAD, which is common for freshly added remotes.
func DefaultRemoteBranch(ctx context.Context, remote string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return "", fmt.Errorf("remote %s has no default branch recorded: %w", remote, err)
	}
	return strings.TrimPrefix(output, remote+"/"), nil
}
