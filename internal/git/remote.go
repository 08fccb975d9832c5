package git

import (
	"context"
	"fmt"
)

// Fetch updates remote-tracking refs from the given remote
func Fetch(ctx context.Context, remote string) error {
	if _, err := RunGitCommandWithContext(ctx, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// HasRemote reports whether the repository has the given remote configured
func HasRemote(ctx context.Context, remote string) (bool, error) {
	remotes, err := RunGitCommandLinesWithContext(ctx, "remote")
	if err != nil {
		return false, fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, name := range remotes {
		if name == remote {
			return true, nil
		}
	}
	return false, nil
}

// RemoteURL returns the configured URL for the given remote
func RemoteURL(ctx context.Context, remote string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to read URL of remote %s: %w", remote, err)
	}
	return output, nil
}

// ProbeRemote contacts the remote and lists its heads without mutating
// anything. Used by diagnostics to verify connectivity.
func ProbeRemote(ctx context.Context, remote string) error {
	if _, err := RunGitCommandWithContext(ctx, "ls-remote", "--heads", remote); err != nil {
		return fmt.Errorf("cannot reach remote %s: %w", remote, err)
	}
	return nil
}

// UpstreamBranch returns the upstream ref of branchName, such as origin/main.
// Returns an empty string without error when no upstream is configured.
func UpstreamBranch(ctx context.Context, branchName string) (string, error) {
	output, err := RunGitCommandWithContext(ctx, "rev-parse", "--abbrev-ref", branchName+"@{u}")
	if err != nil {
		return "", nil
	}
	return output, nil
}
