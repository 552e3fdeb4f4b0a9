package tickettui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devsuite/ticket/ticket"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func pressKey(t *testing.T, m model, key string) model {
	t.Helper()
	updated, _ := m.handleKey(keyMsg(key))
	result, ok := updated.(model)
	if !ok {
		t.Fatalf("handleKey returned %T, want model", updated)
	}
	return result
}

func TestTabSwitching(t *testing.T) {
	m := buildScreencapModel(t)

	m = pressKey(t, m, "tab")
	if m.activeTab != ticket.StatusClosed {
		t.Fatalf("activeTab = %q, want %q", m.activeTab, ticket.StatusClosed)
	}
	m = pressKey(t, m, "tab")
	if m.activeTab != ticket.StatusOpen {
		t.Fatalf("activeTab = %q, want %q", m.activeTab, ticket.StatusOpen)
	}
}

func TestEnterOpensDetailAndEscReturns(t *testing.T) {
	m := buildScreencapModel(t)

	m = pressKey(t, m, "enter")
	if m.focus != focusViewing {
		t.Fatalf("focus = %v after enter, want focusViewing", m.focus)
	}
	m = pressKey(t, m, "esc")
	if m.focus != focusListing {
		t.Fatalf("focus = %v after esc, want focusListing", m.focus)
	}
}

func TestComposeEmptyCommentStaysPut(t *testing.T) {
	m := buildScreencapModel(t)
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "c")
	if m.focus != focusComposing {
		t.Fatalf("focus = %v after c, want focusComposing", m.focus)
	}

	m = pressKey(t, m, "enter")
	if m.focus != focusComposing {
		t.Fatalf("focus = %v after empty submit, want focusComposing", m.focus)
	}
	if m.statusLevel != statusError {
		t.Fatalf("statusLevel = %v, want statusError", m.statusLevel)
	}
}

func TestComposeEscCancels(t *testing.T) {
	m := buildScreencapModel(t)
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "c")
	m.composer.SetValue("half-typed")

	m = pressKey(t, m, "esc")
	if m.focus != focusViewing {
		t.Fatalf("focus = %v after esc, want focusViewing", m.focus)
	}
	if m.composer.Value() != "" {
		t.Fatalf("composer retained %q after cancel", m.composer.Value())
	}
}

func TestSelectionFollowsList(t *testing.T) {
	m := buildScreencapModel(t)

	first, ok := m.currentItem()
	if !ok {
		t.Fatal("no selection after load")
	}
	m.openList.Select(1)
	m.syncSelection()
	second, ok := m.currentItem()
	if !ok {
		t.Fatal("no selection after move")
	}
	if first.ticket.ID == second.ticket.ID {
		t.Fatal("selection did not advance")
	}
	if m.selectedID != second.ticket.ID {
		t.Fatalf("selectedID = %s, want %s", m.selectedID, second.ticket.ID)
	}
}

func TestMutationFailureKeepsState(t *testing.T) {
	m := buildScreencapModel(t)
	m = pressKey(t, m, "enter")

	updated, _ := m.handleMutationDone(mutationDoneMsg{verb: "Close", err: ticket.ErrTicketNotFound})
	result := updated.(model)
	if result.focus != focusViewing {
		t.Fatalf("focus = %v after failed mutation, want focusViewing", result.focus)
	}
	if result.statusLevel != statusError {
		t.Fatalf("statusLevel = %v, want statusError", result.statusLevel)
	}
}

func TestFormatTicketItemShowsCommentCount(t *testing.T) {
	m := buildScreencapModel(t)
	item, ok := m.currentItem()
	if !ok {
		t.Fatal("no selection")
	}
	line := formatTicketItem(item, 80)
	if want := "(1)"; !strings.Contains(line, want) {
		t.Fatalf("item line %q missing comment count %q", line, want)
	}
}
