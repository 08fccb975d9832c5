// Package config manages crestagit configuration persistence.
//
// It handles:
//   - Repository-specific configuration stored under .git/
//   - Branch priority and remote overrides
//   - Log file routing
package config
