package git

import (
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	crestaerrors "github.com/Konoa-1025/Cresta-Open-Data/internal/errors"
)

// Repository wraps a go-git repository for read-only inspection. Mutations
// always go through the command runner so their behavior matches the git
// binary exactly.
type Repository struct {
	*gogit.Repository
	root string
}

// OpenRepository opens the repository containing path, walking up parent
// directories to find the .git directory.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return &Repository{
		Repository: repo,
		root:       worktree.Filesystem.Root(),
	}, nil
}

// OpenCurrentRepository opens the repository containing the working directory
func OpenCurrentRepository() (*Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return OpenRepository(wd)
}

// Root returns the top-level directory of the working tree
func (r *Repository) Root() string {
	return r.root
}

// IsDetached reports whether HEAD references a commit rather than a branch
func (r *Repository) IsDetached() (bool, error) {
	head, err := r.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get HEAD: %w", err)
	}
	return !head.Name().IsBranch(), nil
}

// CurrentBranch returns the current branch name, or ErrNotOnBranch when HEAD
// is detached
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", crestaerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// HeadShortSHA returns the abbreviated commit id HEAD points at
func (r *Repository) HeadShortSHA() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String()[:7], nil
}

// LocalBranchNames returns all local branch names
func (r *Repository) LocalBranchNames() ([]string, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}

// GetRepoRoot returns the root directory of the repository containing the
// working directory
func GetRepoRoot() (string, error) {
	repo, err := OpenCurrentRepository()
	if err != nil {
		return "", err
	}
	return repo.Root(), nil
}
