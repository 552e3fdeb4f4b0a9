package tickettui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/ticket"
)

const (
	screencapWidth  = 100
	screencapHeight = 26
)

func TestTicketTUIScreencapListing(t *testing.T) {
	useASCIIRenderer(t)

	m := buildScreencapModel(t)
	assertScreencap(t, "listing.txt", m.View())
}

func TestTicketTUIScreencapViewing(t *testing.T) {
	useASCIIRenderer(t)

	m := buildScreencapModel(t)
	m.focus = focusViewing
	assertScreencap(t, "viewing.txt", m.View())
}

func TestTicketTUIScreencapComposing(t *testing.T) {
	useASCIIRenderer(t)

	m := buildScreencapModel(t)
	m.focus = focusComposing
	m.composer.SetValue("Looks good to me")
	assertScreencap(t, "composing.txt", m.View())
}

func buildScreencapModel(t *testing.T) model {
	t.Helper()

	now := time.Date(2026, 1, 20, 10, 30, 0, 0, time.UTC)
	author := ticket.Assignee{
		ID:   uuid.MustParse("7f3c9d10-1111-4222-8333-444455556666"),
		Name: "Dana",
	}

	m := newModel(ticket.Open(t.TempDir()), config.UserConfig{ID: author.ID, Name: author.Name})
	m.width = screencapWidth
	m.height = screencapHeight
	m.resize()

	open := []ticket.Ticket{
		{
			ID:          uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057"),
			Title:       "Fix list navigation",
			Description: "Arrow keys should move the selection.",
			Status:      ticket.StatusOpen,
			Version:     ticket.CurrentVersion,
			Assignees:   []ticket.Assignee{author},
			Comments: []ticket.Comment{
				{
					ID:         uuid.MustParse("01890a5d-f1f8-7b44-8a55-0f2099a80b11"),
					AuthorID:   author.ID,
					AuthorName: author.Name,
					Message:    "Reproduced on a narrow terminal.",
					CreatedAt:  now.Add(-2 * time.Hour),
				},
			},
		},
		{
			ID:      uuid.MustParse("01890a5e-0000-7000-8000-000000000001"),
			Title:   "Add migration report",
			Status:  ticket.StatusOpen,
			Version: ticket.CurrentVersion,
		},
	}
	closed := []ticket.Ticket{
		{
			ID:      uuid.MustParse("01890a5c-0000-7000-8000-000000000002"),
			Title:   "Release checklist",
			Status:  ticket.StatusClosed,
			Version: ticket.CurrentVersion,
		},
	}

	m.handleTicketsLoaded(ticketsLoadedMsg{open: open, closed: closed})
	m.openList.Select(0)
	m.syncSelection()
	return m
}

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

// assertScreencap compares the rendered frame against a golden file in
// testdata. A missing golden file (or UPDATE_SCREENCAP=1) records the current
// frame instead of failing, so new screencaps bootstrap themselves.
func assertScreencap(t *testing.T, name, content string) {
	t.Helper()
	content = normalizeScreencap(content)
	path := filepath.Join("testdata", name)

	data, err := os.ReadFile(path)
	if os.Getenv("UPDATE_SCREENCAP") != "" || errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create screencap dir: %v", err)
		}
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write screencap: %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("read screencap: %v", err)
	}
	expected := normalizeScreencap(string(data))
	if content != expected {
		t.Fatalf("screencap mismatch for %s\n--- expected\n%s\n--- got\n%s", name, expected, content)
	}
}

func normalizeScreencap(value string) string {
	value = strings.TrimRight(value, "\n")
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
