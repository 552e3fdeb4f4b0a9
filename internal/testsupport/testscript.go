// Package testsupport holds shared helpers for testscript-based CLI tests.
package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/devsuite/ticket/ticket"
)

var (
	buildOnce  sync.Once
	ticketPath string
	buildErr   error
)

// BuildTicket builds the ticket binary once and returns its path.
func BuildTicket(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "ticket-bin-")
		if err != nil {
			buildErr = err
			return
		}

		ticketPath = filepath.Join(binDir, "ticket")
		cmd := exec.Command("go", "build", "-o", ticketPath, "./cmd/ticket")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build ticket: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return ticketPath
}

// SetupScriptEnv configures common environment variables for testscript.
// Each script gets an isolated HOME and XDG_CONFIG_HOME so user config never
// leaks between runs or out to the developer's machine.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TICKET", BuildTicket(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTicketID finds a ticket by title in a store directory and stores its ID
// in an env var.
func CmdTicketID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("ticketid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: ticketid STOREDIR TITLE VAR")
	}

	store := ticket.Open(ts.MkAbs(args[0]))
	tickets, _, err := store.List(ticket.ListFilter{})
	if err != nil {
		ts.Fatalf("list tickets: %v", err)
	}

	title := args[1]
	for _, t := range tickets {
		if t.Title == title {
			ts.Setenv(args[2], t.ID.String())
			return
		}
	}

	ts.Fatalf("ticket with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
