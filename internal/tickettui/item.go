package tickettui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/devsuite/ticket/ticket"
)

type ticketItem struct {
	ticket ticket.Ticket
}

func (item ticketItem) FilterValue() string {
	return item.ticket.Title
}

type ticketItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
}

func newTicketItemDelegate() ticketItemDelegate {
	return ticketItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")),
	}
}

func (d ticketItemDelegate) Height() int                             { return 1 }
func (d ticketItemDelegate) Spacing() int                            { return 0 }
func (d ticketItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ticketItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(ticketItem)
	if !ok {
		return
	}

	line := formatTicketItem(item, m.Width())
	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTicketItem(item ticketItem, width int) string {
	title := strings.TrimSpace(item.ticket.Title)
	if title == "" {
		title = "(untitled)"
	}
	shortID := item.ticket.ID.String()
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	line := fmt.Sprintf("%s  %s", shortID, title)
	if n := len(item.ticket.Comments); n > 0 {
		line = fmt.Sprintf("%s  (%d)", line, n)
	}
	return truncateText(line, width)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
