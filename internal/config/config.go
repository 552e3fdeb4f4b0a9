// Package config loads and writes the dev-suite configuration files.
//
// The user config lives under the OS config directory and supplies the
// acting user's display name and identifier. The repo config lives inside
// the repository and tracks its maintainers.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/devsuite/ticket/internal/paths"
)

// ErrNoUserConfig is returned when the user config file does not exist.
var ErrNoUserConfig = errors.New("no user config found (run \"ticket init\" to create one)")

// UserConfig identifies the acting user. The id is minted once on first run
// and never changes; the name is display-only.
type UserConfig struct {
	Name string    `toml:"name"`
	ID   uuid.UUID `toml:"id"`
}

// RepoConfig is the per-repository configuration.
type RepoConfig struct {
	Maintainers []Maintainer `toml:"maintainers,omitempty"`
}

// Maintainer is one entry in the repo's maintainer list.
type Maintainer struct {
	Name string    `toml:"name"`
	ID   uuid.UUID `toml:"id"`
}

// LoadUserConfig reads the user config from the OS config directory.
func LoadUserConfig() (UserConfig, error) {
	path, err := paths.UserConfigPath()
	if err != nil {
		return UserConfig{}, err
	}
	return loadUserConfigFile(path)
}

func loadUserConfigFile(path string) (UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return UserConfig{}, ErrNoUserConfig
	}
	if err != nil {
		return UserConfig{}, fmt.Errorf("read user config: %w", err)
	}

	var cfg UserConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return UserConfig{}, fmt.Errorf("parse user config %s: %w", path, err)
	}
	if cfg.Name == "" || cfg.ID == uuid.Nil {
		return UserConfig{}, fmt.Errorf("user config %s is missing a name or id", path)
	}
	return cfg, nil
}

// CreateUserConfig writes a user config with a freshly minted id, unless one
// already exists. Returns the config in effect afterwards.
func CreateUserConfig(name string) (UserConfig, error) {
	path, err := paths.UserConfigPath()
	if err != nil {
		return UserConfig{}, err
	}

	existing, err := loadUserConfigFile(path)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNoUserConfig) {
		return UserConfig{}, err
	}

	cfg := UserConfig{Name: name, ID: uuid.New()}
	if err := writeTOML(path, cfg); err != nil {
		return UserConfig{}, err
	}
	return cfg, nil
}

// LoadRepoConfig reads the repo config. A missing file is an empty config.
func LoadRepoConfig(repoRoot string) (RepoConfig, error) {
	path := paths.RepoConfigPath(repoRoot)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return RepoConfig{}, nil
	}
	if err != nil {
		return RepoConfig{}, fmt.Errorf("read repo config: %w", err)
	}

	var cfg RepoConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return RepoConfig{}, fmt.Errorf("parse repo config %s: %w", path, err)
	}
	return cfg, nil
}

// AddMaintainer records the user in the repo's maintainer list if absent.
func AddMaintainer(repoRoot string, user UserConfig) error {
	cfg, err := LoadRepoConfig(repoRoot)
	if err != nil {
		return err
	}

	for _, m := range cfg.Maintainers {
		if m.ID == user.ID {
			return nil
		}
	}

	cfg.Maintainers = append(cfg.Maintainers, Maintainer{Name: user.Name, ID: user.ID})
	return writeTOML(paths.RepoConfigPath(repoRoot), cfg)
}

func writeTOML(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
