// Package publisher drives the stage, commit, and push workflow on the
// branch chosen by the resolver.
package publisher

import (
	"context"
	"fmt"
	"time"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/resolver"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
)

// Options configure a single publish run.
type Options struct {
	// Message is the commit message. Empty means a generated
	// timestamped message.
	Message string

	// Files restricts staging to exactly these paths. Empty means
	// stage everything.
	Files []string

	// Force makes the push overwrite the remote branch.
	Force bool
}

// Result reports how far a publish got. A failed push still leaves
// Committed true, so callers can tell "stopped partway" from "did nothing".
type Result struct {
	Branch    string
	Committed bool
	Pushed    bool
	Reason    string
	ErrorKind crestaerrors.Kind
}

// Phase indices into the progress display.
const (
	phaseResolve = iota
	phaseStage
	phaseCommit
	phasePush
)

// CommitPublisher stages, commits, and pushes on the resolved branch. One
// publish runs at a time; a failed step stops the run and rolls nothing back.
type CommitPublisher struct {
	runner   git.Runner
	resolver *resolver.BranchResolver
	splog    *tui.Splog
	ui       tui.PublishUI
	remote   string
}

// New creates a CommitPublisher publishing to the given remote.
func New(runner git.Runner, res *resolver.BranchResolver, splog *tui.Splog, ui tui.PublishUI, remote string) *CommitPublisher {
	return &CommitPublisher{
		runner:   runner,
		resolver: res,
		splog:    splog,
		ui:       ui,
		remote:   remote,
	}
}

// DefaultMessage is the commit message used when none is provided.
func DefaultMessage(now time.Time) string {
	return "auto-commit " + now.Format("2006-01-02 15:04:05")
}

// Publish resolves the target branch, stages, commits, and pushes. The
// returned Result is populated as far as the run got, alongside any error.
func (p *CommitPublisher) Publish(ctx context.Context, opts Options) (Result, error) {
	result := Result{}

	// Surface an unreachable git binary before walking through the phases
	if _, err := p.runner.HasUncommittedChanges(ctx); err != nil {
		result.ErrorKind = crestaerrors.KindOf(err)
		return result, err
	}

	p.ui.Start([]tui.PhaseItem{
		{Name: "resolve branch", Status: "pending"},
		{Name: "stage changes", Status: "pending"},
		{Name: "commit", Status: "pending"},
		{Name: "push", Status: "pending"},
	})

	p.ui.UpdatePhase(phaseResolve, "running", "", nil)
	branch, err := p.resolver.Resolve(ctx)
	if err != nil {
		p.ui.UpdatePhase(phaseResolve, "error", "", err)
		return p.fail(result, err)
	}
	result.Branch = branch
	p.splog.Debug("Publishing to %s/%s", p.remote, branch)
	p.ui.UpdatePhase(phaseResolve, "done", branch, nil)

	p.ui.UpdatePhase(phaseStage, "running", "", nil)
	if err := p.stage(ctx, opts.Files); err != nil {
		p.ui.UpdatePhase(phaseStage, "error", "", err)
		return p.fail(result, err)
	}

	staged, err := p.runner.HasStagedChanges(ctx)
	if err != nil {
		p.ui.UpdatePhase(phaseStage, "error", "", err)
		return p.fail(result, err)
	}
	if !staged {
		p.ui.UpdatePhase(phaseStage, "done", "no changes", nil)
		p.ui.UpdatePhase(phaseCommit, "skipped", "nothing to commit", nil)
		p.ui.UpdatePhase(phasePush, "skipped", "nothing to commit", nil)
		p.ui.Complete(fmt.Sprintf("Nothing to commit on %s", branch))
		result.Reason = "nothing to commit"
		return result, nil
	}
	p.ui.UpdatePhase(phaseStage, "done", describeStaged(opts.Files), nil)

	message := opts.Message
	if message == "" {
		message = DefaultMessage(time.Now())
	}

	p.ui.UpdatePhase(phaseCommit, "running", "", nil)
	if err := p.runner.Commit(ctx, message); err != nil {
		p.ui.UpdatePhase(phaseCommit, "error", "", err)
		return p.fail(result, err)
	}
	result.Committed = true
	if sha, err := p.runner.HeadShortSHA(ctx); err == nil {
		p.ui.UpdatePhase(phaseCommit, "done", sha, nil)
	} else {
		p.ui.UpdatePhase(phaseCommit, "done", "", nil)
	}

	p.ui.UpdatePhase(phasePush, "running", "", nil)
	if err := p.runner.Push(ctx, p.remote, branch, opts.Force); err != nil {
		p.ui.UpdatePhase(phasePush, "error", "", err)
		return p.fail(result, err)
	}
	result.Pushed = true
	p.ui.UpdatePhase(phasePush, "done", p.remote+"/"+branch, nil)
	p.ui.Complete(fmt.Sprintf("✅ Published %s to %s", branch, p.remote))

	return result, nil
}

func (p *CommitPublisher) stage(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return p.runner.StageAll(ctx)
	}
	return p.runner.StagePaths(ctx, files)
}

// fail records the error classification and shuts the progress display down
// without a summary; the caller owns the final error line.
func (p *CommitPublisher) fail(result Result, err error) (Result, error) {
	result.ErrorKind = crestaerrors.KindOf(err)
	p.ui.Complete("")
	return result, err
}

func describeStaged(files []string) string {
	if len(files) == 0 {
		return "all changes"
	}
	if len(files) == 1 {
		return "1 path"
	}
	return fmt.Sprintf("%d paths", len(files))
}
