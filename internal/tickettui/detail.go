package tickettui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/devsuite/ticket/internal/markdown"
	"github.com/devsuite/ticket/internal/ui"
	"github.com/devsuite/ticket/ticket"
)

// detailModel renders one ticket's description, assignees, and comment
// thread in a scrollable viewport.
type detailModel struct {
	ticket   ticket.Ticket
	viewport viewport.Model
	width    int
	height   int
}

func newDetailModel() detailModel {
	return detailModel{viewport: viewport.New(0, 0)}
}

func (d *detailModel) SetTicket(t ticket.Ticket) {
	d.ticket = t
	d.viewport.SetContent(d.renderContent())
	d.viewport.GotoTop()
}

func (d *detailModel) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	d.viewport.SetContent(d.renderContent())
}

func (d detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d detailModel) View() string {
	if d.ticket.Title == "" {
		return valueMuted.Render("No ticket selected")
	}
	return d.viewport.View()
}

func (d detailModel) renderContent() string {
	t := d.ticket
	if t.Title == "" {
		return ""
	}
	width := d.width
	if width < 1 {
		width = 1
	}

	var sections []string
	sections = append(sections,
		labelStyle.Render(truncateText(t.Title, width)),
		valueMuted.Render(t.ID.String()),
		"")

	sections = append(sections, labelStyle.Render("Description"))
	if description := markdown.Render(t.Description, width); description != "" {
		sections = append(sections, description)
	} else {
		sections = append(sections, valueMuted.Render("(none)"))
	}
	sections = append(sections, "")

	sections = append(sections, labelStyle.Render("Assignees"))
	if len(t.Assignees) == 0 {
		sections = append(sections, valueMuted.Render("(none)"))
	} else {
		names := make([]string, 0, len(t.Assignees))
		for _, a := range t.Assignees {
			names = append(names, a.Name)
		}
		sections = append(sections, wordwrap.String(strings.Join(names, ", "), width))
	}
	sections = append(sections, "")

	sections = append(sections, labelStyle.Render(fmt.Sprintf("Comments (%d)", len(t.Comments))))
	for _, c := range t.Comments {
		header := fmt.Sprintf("%s  %s", c.AuthorName, ui.FormatTimestamp(c.CreatedAt))
		sections = append(sections,
			authorStyle.Render(header),
			wordwrap.String(c.Message, width),
			"")
	}

	return strings.Join(sections, "\n")
}
