// Package resolver picks the branch a publish should land on and makes sure
// it exists locally, surviving detached-HEAD working trees.
package resolver

import (
	"context"
	"errors"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/config"
	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/utils"
)

// Inventory holds the local and remote branch names seen by one listing pass
type Inventory struct {
	Local  []string
	Remote []string
}

// BranchResolver decides which branch publishes land on. All repository reads
// and writes go through the runner so tests can substitute a fake.
type BranchResolver struct {
	runner   git.Runner
	splog    *tui.Splog
	priority []string
	remote   string
}

// New creates a BranchResolver. An empty priority list or remote name falls
// back to the configured defaults.
func New(runner git.Runner, splog *tui.Splog, priority []string, remote string) *BranchResolver {
	if len(priority) == 0 {
		priority = config.DefaultBranchPriority
	}
	if remote == "" {
		remote = config.DefaultRemote
	}
	return &BranchResolver{
		runner:   runner,
		splog:    splog,
		priority: priority,
		remote:   remote,
	}
}

// Priority returns the priority list the resolver selects with.
func (r *BranchResolver) Priority() []string {
	return r.priority
}

// Remote returns the remote name the resolver works against.
func (r *BranchResolver) Remote() string {
	return r.remote
}

// ListBranches returns the local and remote branch inventories. Every call
// queries git fresh; nothing is cached between calls.
func (r *BranchResolver) ListBranches(ctx context.Context) (Inventory, error) {
	local, err := r.runner.LocalBranches(ctx)
	if err != nil {
		return Inventory{}, err
	}
	remote, err := r.runner.RemoteBranches(ctx, r.remote)
	if err != nil {
		return Inventory{}, err
	}
	return Inventory{Local: local, Remote: remote}, nil
}

// IsDetached reports whether HEAD points at a commit instead of a branch.
func (r *BranchResolver) IsDetached(ctx context.Context) (bool, error) {
	return r.runner.IsDetachedHead(ctx)
}

// SelectBranch picks the publish target from an inventory: the first priority
// entry present locally or remotely, else the first local branch. Inspects
// nothing beyond the inventory it is given.
func (r *BranchResolver) SelectBranch(inv Inventory) (string, error) {
	for _, name := range r.priority {
		if utils.ContainsString(inv.Local, name) || utils.ContainsString(inv.Remote, name) {
			return name, nil
		}
	}
	if len(inv.Local) > 0 {
		return inv.Local[0], nil
	}
	return "", crestaerrors.ErrNoCandidateBranch
}

// EnsureAvailable brings name into existence as the checked-out local branch:
// checkout when it exists locally, a tracking branch when only the remote has
// it, a fresh branch at the current commit when neither does. Already being
// on name is a no-op.
func (r *BranchResolver) EnsureAvailable(ctx context.Context, name string) (string, error) {
	current, err := r.runner.CurrentBranch(ctx)
	if err == nil && current == name {
		return name, nil
	}

	exists, err := r.runner.LocalBranchExists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		r.splog.Debug("Checking out existing local branch %s", name)
		if err := r.runner.CheckoutBranch(ctx, name); err != nil {
			return "", err
		}
		return name, nil
	}

	onRemote, err := r.runner.RemoteBranchExists(ctx, r.remote, name)
	if err != nil {
		return "", err
	}
	if onRemote {
		r.splog.Info("Branch %s only exists on %s, creating a local tracking branch", name, r.remote)
		if err := r.runner.CreateTrackingBranch(ctx, r.remote, name); err != nil {
			return "", err
		}
		return name, nil
	}

	r.splog.Info("Branch %s does not exist anywhere, creating it at the current commit", name)
	if err := r.runner.CreateAndCheckoutBranch(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

// Resolve returns the branch a publish should land on. On a branch it is the
// current one, untouched. On a detached HEAD it refreshes remote knowledge,
// selects by priority, and materializes the pick.
func (r *BranchResolver) Resolve(ctx context.Context) (string, error) {
	detached, err := r.IsDetached(ctx)
	if err != nil {
		return "", err
	}
	if !detached {
		return r.runner.CurrentBranch(ctx)
	}

	r.splog.Warn("HEAD is detached, resolving a branch to publish to")

	if err := r.runner.Fetch(ctx, r.remote); err != nil {
		r.splog.Warn("Fetching %s failed, continuing with local knowledge: %v", r.remote, err)
	}

	inv, err := r.ListBranches(ctx)
	if err != nil {
		return "", err
	}
	r.splog.Debug("Branch inventory: local=%v remote=%v", inv.Local, inv.Remote)

	name, err := r.SelectBranch(inv)
	if err != nil {
		if !errors.Is(err, crestaerrors.ErrNoCandidateBranch) {
			return "", err
		}
		name = r.priority[0]
		r.splog.Info("No branches exist yet, starting %s from the current commit", name)
	}

	return r.EnsureAvailable(ctx, name)
}
