// Package errors provides sentinel errors and custom error types for the crestagit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNoCandidateBranch indicates that branch selection found no usable branch
	ErrNoCandidateBranch = errors.New("no candidate branch")

	// ErrAuthenticationFailed indicates that the remote rejected our credentials
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNetworkUnavailable indicates that the remote host could not be reached
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrPushRejected indicates that the remote refused the push
	ErrPushRejected = errors.New("push rejected")
)

// Kind classifies a failure by the publish step that produced it. It drives
// the final log line and the error field of a publish result.
type Kind string

const (
	KindNone            Kind = ""
	KindToolInvocation  Kind = "tool-invocation"
	KindBranchOperation Kind = "branch-operation"
	KindStaging         Kind = "staging"
	KindCommit          Kind = "commit"
	KindAuthentication  Kind = "authentication"
	KindNetwork         Kind = "network"
	KindPush            Kind = "push"
)

// KindOf returns the classification of err, most specific wrapper first.
// Unwrapped git command failures classify as tool invocation errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		authErr    *AuthenticationError
		netErr     *NetworkError
		pushErr    *PushError
		stagingErr *StagingError
		commitErr  *CommitError
		branchErr  *BranchOperationError
		gitErr     *GitCommandError
	)
	switch {
	case errors.As(err, &authErr):
		return KindAuthentication
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &pushErr):
		return KindPush
	case errors.As(err, &stagingErr):
		return KindStaging
	case errors.As(err, &commitErr):
		return KindCommit
	case errors.As(err, &branchErr):
		return KindBranchOperation
	case errors.As(err, &gitErr):
		return KindToolInvocation
	}
	return KindNone
}

// IsTimeout reports whether err was caused by a command deadline expiring.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// GitCommandError represents an error from a git command execution: the tool
// was unreachable, timed out, or exited with a failure we did not expect.
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// BranchOperationError represents a failed branch mutation (checkout, create,
// track). Op names the sub-step so diagnostics can say which one broke.
type BranchOperationError struct {
	Op     string
	Branch string
	Err    error
}

func (e *BranchOperationError) Error() string {
	return fmt.Sprintf("branch operation %s failed for %s: %v", e.Op, e.Branch, e.Err)
}

func (e *BranchOperationError) Unwrap() error {
	return e.Err
}

// NewBranchOperationError creates a new BranchOperationError
func NewBranchOperationError(op, branch string, err error) *BranchOperationError {
	return &BranchOperationError{Op: op, Branch: branch, Err: err}
}

// StagingError represents a failure to stage changes. Path is the offending
// path when a specific file list was given, empty for stage-all.
type StagingError struct {
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to stage %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to stage changes: %v", e.Err)
}

func (e *StagingError) Unwrap() error {
	return e.Err
}

// NewStagingError creates a new StagingError
func NewStagingError(path string, err error) *StagingError {
	return &StagingError{Path: path, Err: err}
}

// CommitError represents a commit invocation that exited with a failure
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// NewCommitError creates a new CommitError
func NewCommitError(err error) *CommitError {
	return &CommitError{Err: err}
}

// AuthenticationError represents a push rejected by the remote for credential
// reasons. The wrapped error carries the raw tool text.
type AuthenticationError struct {
	Remote string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication to %s failed: %v", e.Remote, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrAuthenticationFailed
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(remote string, err error) *AuthenticationError {
	return &AuthenticationError{Remote: remote, Err: err}
}

// NetworkError represents a push that could not reach the remote host
type NetworkError struct {
	Remote string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.Remote, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrNetworkUnavailable
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkUnavailable
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(remote string, err error) *NetworkError {
	return &NetworkError{Remote: remote, Err: err}
}

// PushError represents a push the remote refused for reasons other than
// credentials or connectivity, such as a non-fast-forward update.
type PushError struct {
	Branch string
	Remote string
	Err    error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("failed to push %s to %s: %v", e.Branch, e.Remote, e.Err)
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrPushRejected
func (e *PushError) Is(target error) bool {
	return target == ErrPushRejected
}

// NewPushError creates a new PushError
func NewPushError(branch, remote string, err error) *PushError {
	return &PushError{Branch: branch, Remote: remote, Err: err}
}
