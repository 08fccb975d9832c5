package git

import (
	"context"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// CheckoutBranch checks out an existing local branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", branchName)
	if err != nil {
		return crestaerrors.NewBranchOperationError("checkout", branchName, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates a new branch at the current commit and
// checks it out
func CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "-b", branchName)
	if err != nil {
		return crestaerrors.NewBranchOperationError("create", branchName, err)
	}
	return nil
}

// CreateTrackingBranch creates a local branch from the remote-tracking ref of
// the same name, sets up tracking, and checks it out. The remote-tracking ref
// must already be known locally.
func CreateTrackingBranch(ctx context.Context, remote, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "-b", branchName, remote+"/"+branchName)
	if err != nil {
		return crestaerrors.NewBranchOperationError("track", branchName, err)
	}
	return nil
}
