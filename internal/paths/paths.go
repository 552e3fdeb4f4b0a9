// Package paths locates the repository and the directories ticket uses.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRepoRootNotFound is returned when no enclosing git repository exists.
var ErrRepoRootNotFound = errors.New("not inside a git repository")

// DevSuiteDir is the repository subdirectory holding dev-suite state.
const DevSuiteDir = ".dev-suite"

// FindRepoRoot walks upward from dir until it finds a directory containing a
// .git entry and returns that directory.
func FindRepoRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRepoRootNotFound
		}
		dir = parent
	}
}

// TicketRoot returns the ticket directory for a repository root.
func TicketRoot(repoRoot string) string {
	return filepath.Join(repoRoot, DevSuiteDir, "ticket")
}

// RepoConfigPath returns the repo config file path for a repository root.
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, DevSuiteDir, "repo-config.toml")
}

// UserConfigPath returns the per-user config file path.
func UserConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config directory: %w", err)
	}
	return filepath.Join(base, "dev-suite", "user-config.toml"), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
