// Package git provides a wrapper around git commands and go-git for repository operations.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// DefaultCommandTimeout bounds every git invocation. A hung subprocess is
// cancelled after this long and surfaces as a command error.
const DefaultCommandTimeout = 30 * time.Second

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// defaultRunner is the global runner used by the package-level functions
var defaultRunner = &CommandRunner{}

// SetWorkingDir sets the working directory for the default git runner.
func SetWorkingDir(dir string) {
	defaultRunner.workingDir = dir
}

// GetWorkingDir returns the current working directory setting for the default runner.
func GetWorkingDir() string {
	return defaultRunner.workingDir
}

// RunGitCommand executes a git command using the default runner and returns the output.
// It uses context.Background() with the default timeout.
func RunGitCommand(args ...string) (string, error) {
	return defaultRunner.Run(context.Background(), args...)
}

// RunGitCommandInDir executes a git command in a specific directory and returns the output.
func RunGitCommandInDir(dir string, args ...string) (string, error) {
	runner := &CommandRunner{workingDir: dir}
	return runner.Run(context.Background(), args...)
}

// RunGitCommandWithContext executes a git command with the given context using the default runner.
func RunGitCommandWithContext(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Run(ctx, args...)
}

// RunGitCommandLinesWithContext executes a git command with context and returns output as lines
func RunGitCommandLinesWithContext(ctx context.Context, args ...string) ([]string, error) {
	output, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// Run executes a git command with the given context and returns the output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, true, args...)
}

// runInternal is the internal implementation that handles directory and trimming
func (r *CommandRunner) runInternal(ctx context.Context, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", crestaerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", crestaerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// RunGHCommandWithContext executes a gh command with the given context.
func RunGHCommandWithContext(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gh", args...)
	if defaultRunner.workingDir != "" {
		cmd.Dir = defaultRunner.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", crestaerrors.NewGitCommandError("gh", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", crestaerrors.NewGitCommandError("gh", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Runner defines the interface for git operations used by the resolver and
// publisher. This allows them to be used with both real git and mock
// implementations.
type Runner interface {
	// Branch inspection
	CurrentBranch(ctx context.Context) (string, error)
	IsDetachedHead(ctx context.Context) (bool, error)
	LocalBranches(ctx context.Context) ([]string, error)
	RemoteBranches(ctx context.Context, remote string) ([]string, error)
	LocalBranchExists(ctx context.Context, branchName string) (bool, error)
	RemoteBranchExists(ctx context.Context, remote, branchName string) (bool, error)
	HeadShortSHA(ctx context.Context) (string, error)

	// Branch manipulation
	CheckoutBranch(ctx context.Context, branchName string) error
	CreateAndCheckoutBranch(ctx context.Context, branchName string) error
	CreateTrackingBranch(ctx context.Context, remote, branchName string) error

	// Publish operations
	Fetch(ctx context.Context, remote string) error
	HasUncommittedChanges(ctx context.Context) (bool, error)
	StagePaths(ctx context.Context, paths []string) error
	StageAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branchName string, force bool) error
}

// NewRealRunner returns a standard implementation of Runner that calls
// the package-level git functions.
func NewRealRunner() Runner {
	return &realRunner{}
}

// realRunner implements Runner by calling the actual git package functions
type realRunner struct{}

func (r *realRunner) CurrentBranch(ctx context.Context) (string, error) {
	return CurrentBranch(ctx)
}

func (r *realRunner) IsDetachedHead(ctx context.Context) (bool, error) {
	return IsDetachedHead(ctx)
}

func (r *realRunner) LocalBranches(ctx context.Context) ([]string, error) {
	return LocalBranches(ctx)
}

func (r *realRunner) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	return RemoteBranches(ctx, remote)
}

func (r *realRunner) LocalBranchExists(ctx context.Context, branchName string) (bool, error) {
	return LocalBranchExists(ctx, branchName)
}

func (r *realRunner) RemoteBranchExists(ctx context.Context, remote, branchName string) (bool, error) {
	return RemoteBranchExists(ctx, remote, branchName)
}

func (r *realRunner) HeadShortSHA(ctx context.Context) (string, error) {
	return HeadShortSHA(ctx)
}

func (r *realRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	return CheckoutBranch(ctx, branchName)
}

func (r *realRunner) CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	return CreateAndCheckoutBranch(ctx, branchName)
}

func (r *realRunner) CreateTrackingBranch(ctx context.Context, remote, branchName string) error {
	return CreateTrackingBranch(ctx, remote, branchName)
}

func (r *realRunner) Fetch(ctx context.Context, remote string) error {
	return Fetch(ctx, remote)
}

func (r *realRunner) HasUncommittedChanges(ctx context.Context) (bool, error) {
	return HasUncommittedChanges(ctx)
}

func (r *realRunner) StagePaths(ctx context.Context, paths []string) error {
	return StagePaths(ctx, paths)
}

func (r *realRunner) StageAll(ctx context.Context) error {
	return StageAll(ctx)
}

func (r *realRunner) HasStagedChanges(ctx context.Context) (bool, error) {
	return HasStagedChanges(ctx)
}

func (r *realRunner) Commit(ctx context.Context, message string) error {
	return Commit(ctx, message)
}

func (r *realRunner) Push(ctx context.Context, remote, branchName string, force bool) error {
	return Push(ctx, remote, branchName, force)
}
