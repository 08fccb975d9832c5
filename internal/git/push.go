package git

import (
	"context"
	"errors"
	"strings"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// authMarkers are stderr fragments that identify a credential rejection.
// Checked before networkMarkers because transport errors often share the
// same "unable to access" preamble.
var authMarkers = []string{
	"authentication failed",
	"could not read username",
	"could not read password",
	"permission denied (publickey)",
	"invalid username or password",
	"terminal prompts disabled",
	"error: 403",
	"support for password authentication was removed",
}

// networkMarkers are stderr fragments that identify an unreachable remote.
var networkMarkers = []string{
	"could not resolve host",
	"could not resolve hostname",
	"connection refused",
	"connection timed out",
	"operation timed out",
	"network is unreachable",
	"no route to host",
	"failed to connect",
	"couldn't connect to server",
}

// Push pushes branchName to the remote, always establishing upstream
// tracking so later pulls and pushes work without arguments. Failures are
// classified from the raw tool output.
func Push(ctx context.Context, remote, branchName string, force bool) error {
	args := []string{"push", "-u", remote, branchName}
	if force {
		args = append(args, "--force")
	}

	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return ClassifyPushError(remote, branchName, err)
	}
	return nil
}

// ClassifyPushError inspects the raw output of a failed push and wraps it in
// the matching error type. Timeouts pass through unchanged so they keep their
// tool-invocation classification.
func ClassifyPushError(remote, branchName string, err error) error {
	if crestaerrors.IsTimeout(err) {
		return err
	}

	var gitErr *crestaerrors.GitCommandError
	if !errors.As(err, &gitErr) {
		return crestaerrors.NewPushError(branchName, remote, err)
	}

	text := strings.ToLower(gitErr.Stderr + "\n" + gitErr.Stdout)
	for _, marker := range authMarkers {
		if strings.Contains(text, marker) {
			return crestaerrors.NewAuthenticationError(remote, err)
		}
	}
	for _, marker := range networkMarkers {
		if strings.Contains(text, marker) {
			return crestaerrors.NewNetworkError(remote, err)
		}
	}
	return crestaerrors.NewPushError(branchName, remote, err)
}
