// Package tui provides the terminal user interface for crestagit.
//
// It handles:
//   - Interactive prompts (using survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Publish progress rendering (using bubbletea)
package tui
