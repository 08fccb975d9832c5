// Package runtime provides the execution context for crestagit commands.
//
// It encapsulates shared dependencies and configuration needed by commands,
// such as the logger, git runner, branch resolver, and repository root path.
package runtime
