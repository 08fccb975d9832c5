package git

import (
	"context"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// Commit creates a commit with the given message. The message is always
// passed on the command line so no editor is ever opened.
func Commit(ctx context.Context, message string) error {
	if _, err := RunGitCommandWithContext(ctx, "commit", "-m", message); err != nil {
		return crestaerrors.NewCommitError(err)
	}
	return nil
}
