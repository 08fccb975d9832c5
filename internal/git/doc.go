// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Branch inspection (current branch, detached HEAD, local and remote inventories)
//   - Branch management (checkout, create, track remote branches)
//   - Publish operations (stage, commit, push with upstream tracking)
//   - Remote operations (fetch, connectivity probes)
//
// Read-only repository inspection additionally goes through go-git, while
// every mutation runs the real git binary so behavior matches it exactly.
// This package should be the only place where direct git commands are executed.
package git
