// Package config provides repository configuration management,
// including reading and writing crestagit configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBranchPriority is the order branches are preferred in when the
// repository has no override configured.
var DefaultBranchPriority = []string{"main", "master", "develop"}

// DefaultRemote is the remote used when none is configured.
const DefaultRemote = "origin"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	BranchPriority []string `json:"branchPriority,omitempty"`
	Remote         *string  `json:"remote,omitempty"`
	LogFile        *string  `json:"logFile,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".crestagit_config")
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

func writeRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), configJSON, 0600)
}

// GetBranchPriority returns the configured branch priority order, falling
// back to DefaultBranchPriority.
func GetBranchPriority(repoRoot string) ([]string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	if len(config.BranchPriority) > 0 {
		return config.BranchPriority, nil
	}

	return DefaultBranchPriority, nil
}

// SetBranchPriority updates the branch priority order in the config
func SetBranchPriority(repoRoot string, priority []string) error {
	if len(priority) == 0 {
		return fmt.Errorf("branch priority cannot be empty")
	}

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.BranchPriority = priority
	return writeRepoConfig(repoRoot, config)
}

// GetRemote returns the configured remote name, or "origin" as default
func GetRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Remote != nil && *config.Remote != "" {
		return *config.Remote, nil
	}

	return DefaultRemote, nil
}

// SetRemote updates the remote name in the config
func SetRemote(repoRoot string, remote string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Remote = &remote
	return writeRepoConfig(repoRoot, config)
}

// GetLogFile returns the configured log file path. The CRESTAGIT_LOG_FILE
// environment variable takes precedence over the repository config so CI can
// redirect logs without touching the checkout. Empty means file logging is
// disabled.
func GetLogFile(repoRoot string) (string, error) {
	if path := os.Getenv("CRESTAGIT_LOG_FILE"); path != "" {
		return path, nil
	}

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.LogFile != nil {
		return *config.LogFile, nil
	}

	return "", nil
}
