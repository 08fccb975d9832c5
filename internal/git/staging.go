package git

import (
	"context"
	"strings"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// StagePaths stages the given paths one at a time so a failure can name the
// path that caused it.
func StagePaths(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if _, err := RunGitCommandWithContext(ctx, "add", path); err != nil {
			return crestaerrors.NewStagingError(path, err)
		}
	}
	return nil
}

// StageAll stages all changes including untracked files
func StageAll(ctx context.Context) error {
	if _, err := RunGitCommandWithContext(ctx, "add", "-A"); err != nil {
		return crestaerrors.NewStagingError("", err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUncommittedChanges reports whether the working tree has any staged,
// unstaged, or untracked changes.
func HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}
