package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	root, _ = filepath.EvalSymlinks(root)
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(root, "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	for _, start := range []string{root, nested} {
		found, err := FindRepoRoot(start)
		if err != nil {
			t.Fatalf("FindRepoRoot(%s): %v", start, err)
		}
		if found != root {
			t.Errorf("FindRepoRoot(%s) = %s, want %s", start, found, root)
		}
	}
}

func TestFindRepoRootNotFound(t *testing.T) {
	outside := t.TempDir()

	_, err := FindRepoRoot(outside)
	if !errors.Is(err, ErrRepoRootNotFound) {
		t.Errorf("FindRepoRoot = %v, want ErrRepoRootNotFound", err)
	}
}

func TestDerivedPaths(t *testing.T) {
	root := filepath.Join("some", "repo")

	if got, want := TicketRoot(root), filepath.Join(root, ".dev-suite", "ticket"); got != want {
		t.Errorf("TicketRoot = %s, want %s", got, want)
	}
	if got, want := RepoConfigPath(root), filepath.Join(root, ".dev-suite", "repo-config.toml"); got != want {
		t.Errorf("RepoConfigPath = %s, want %s", got, want)
	}
}

func TestUserConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	path, err := UserConfigPath()
	if err != nil {
		t.Fatalf("UserConfigPath: %v", err)
	}
	want := filepath.Join(home, ".config", "dev-suite", "user-config.toml")
	if path != want {
		t.Errorf("UserConfigPath = %s, want %s", path, want)
	}
}
