package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/devsuite/ticket/internal/paths"
)

func setupConfigHome(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func TestLoadUserConfigMissing(t *testing.T) {
	setupConfigHome(t)

	_, err := LoadUserConfig()
	if !errors.Is(err, ErrNoUserConfig) {
		t.Errorf("LoadUserConfig = %v, want ErrNoUserConfig", err)
	}
}

func TestCreateUserConfigMintsOnce(t *testing.T) {
	setupConfigHome(t)

	created, err := CreateUserConfig("Dana")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Dana" || created.ID == uuid.Nil {
		t.Fatalf("created = %+v", created)
	}

	// A second create keeps the minted id, even under another name.
	again, err := CreateUserConfig("Somebody Else")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if again.ID != created.ID || again.Name != "Dana" {
		t.Errorf("second create = %+v, want the original config", again)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != created {
		t.Errorf("loaded = %+v, want %+v", loaded, created)
	}
}

func TestLoadUserConfigRejectsIncomplete(t *testing.T) {
	setupConfigHome(t)

	path, err := paths.UserConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("name = \"Dana\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadUserConfig(); err == nil {
		t.Error("config without an id was accepted")
	}
}

func TestRepoConfigMissingIsEmpty(t *testing.T) {
	cfg, err := LoadRepoConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Maintainers) != 0 {
		t.Errorf("maintainers = %v, want none", cfg.Maintainers)
	}
}

func TestAddMaintainer(t *testing.T) {
	repoRoot := t.TempDir()
	user := UserConfig{Name: "Dana", ID: uuid.New()}

	if err := AddMaintainer(repoRoot, user); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := AddMaintainer(repoRoot, user); err != nil {
		t.Fatalf("second add: %v", err)
	}

	cfg, err := LoadRepoConfig(repoRoot)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Maintainers) != 1 || cfg.Maintainers[0].ID != user.ID {
		t.Errorf("maintainers = %v, want exactly one entry for %s", cfg.Maintainers, user.ID)
	}

	other := UserConfig{Name: "Robin", ID: uuid.New()}
	if err := AddMaintainer(repoRoot, other); err != nil {
		t.Fatalf("add other: %v", err)
	}
	cfg, err = LoadRepoConfig(repoRoot)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(cfg.Maintainers) != 2 {
		t.Errorf("maintainers = %v, want two entries", cfg.Maintainers)
	}
}
