package runtime

import (
	"fmt"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/config"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/publisher"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/resolver"
	"github.com/Konoa-1025/Cresta-Open-Data/internal/tui"
)

// Context provides access to the assembled dependencies for commands
type Context struct {
	Splog     *tui.Splog
	Runner    git.Runner
	Resolver  *resolver.BranchResolver
	Publisher *publisher.CommitPublisher
	RepoRoot  string
	Remote    string
}

// GetContext builds the context for the repository containing the working
// directory. Branch priority, remote, and log file come from the repository
// config, with environment overrides.
func GetContext() (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	logFile, err := config.GetLogFile(repoRoot)
	if err != nil {
		return nil, err
	}
	splog, err := tui.NewSplogWithConfig(logFile)
	if err != nil {
		return nil, err
	}

	priority, err := config.GetBranchPriority(repoRoot)
	if err != nil {
		return nil, err
	}
	remote, err := config.GetRemote(repoRoot)
	if err != nil {
		return nil, err
	}

	runner := git.NewRealRunner()
	res := resolver.New(runner, splog, priority, remote)

	return &Context{
		Splog:     splog,
		Runner:    runner,
		Resolver:  res,
		Publisher: publisher.New(runner, res, splog, tui.NewPublishUI(splog), remote),
		RepoRoot:  repoRoot,
		Remote:    remote,
	}, nil
}

// Close releases the context's resources, flushing the log file if one is
// open.
func (c *Context) Close() error {
	return c.Splog.Close()
}
