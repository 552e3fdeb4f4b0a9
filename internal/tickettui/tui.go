// Package tickettui implements the interactive terminal front-end.
//
// The controller is a single bubbletea event loop over three states: Listing
// (ticket list with an Open/Closed tab bar), Viewing (one ticket's detail
// with a scrollable comment thread), and Composing (comment entry). Every
// mutation runs a full load -> transform -> save cycle through the store and
// then reloads, so the view never goes stale against other processes.
package tickettui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/ticket"
)

type focusState int

const (
	focusListing focusState = iota
	focusViewing
	focusComposing
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type model struct {
	store  *ticket.Store
	user   config.UserConfig
	width  int
	height int

	activeTab  ticket.Status
	focus      focusState
	openList   list.Model
	closedList list.Model
	detail     detailModel
	composer   textinput.Model

	status      string
	statusLevel statusLevel
	selectedID  uuid.UUID
}

// Run starts the interactive controller and blocks until the user quits.
func Run(store *ticket.Store, user config.UserConfig) error {
	if store == nil {
		return fmt.Errorf("ticket store is required")
	}
	program := tea.NewProgram(newModel(store, user), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newModel(store *ticket.Store, user config.UserConfig) model {
	newTicketList := func(title string) list.Model {
		l := list.New(nil, newTicketItemDelegate(), 0, 0)
		l.Title = title
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		l.SetShowPagination(false)
		return l
	}

	composer := textinput.New()
	composer.Prompt = "> "
	composer.Placeholder = "Write a comment"

	return model{
		store:      store,
		user:       user,
		activeTab:  ticket.StatusOpen,
		focus:      focusListing,
		openList:   newTicketList("Open"),
		closedList: newTicketList("Closed"),
		detail:     newDetailModel(),
		composer:   composer,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTicketsCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ticketsLoadedMsg:
		m.handleTicketsLoaded(msg)
		return m, nil
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	}

	return m.forwardToFocused(msg)
}

func (m model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusListing:
		if m.activeTab == ticket.StatusOpen {
			m.openList, cmd = m.openList.Update(msg)
		} else {
			m.closedList, cmd = m.closedList.Update(msg)
		}
		m.syncSelection()
	case focusViewing:
		m.detail, cmd = m.detail.Update(msg)
	case focusComposing:
		m.composer, cmd = m.composer.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.focus == focusComposing {
		switch key {
		case "enter":
			return m.commitComment()
		case "esc":
			m.composer.Reset()
			m.composer.Blur()
			m.focus = focusViewing
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.focus == focusListing {
			return m, tea.Quit
		}
	case "esc":
		if m.focus == focusViewing {
			m.focus = focusListing
			return m, nil
		}
		if m.focus == focusListing {
			return m, tea.Quit
		}
	case "enter":
		if m.focus == focusListing {
			if _, ok := m.currentItem(); ok {
				m.focus = focusViewing
			}
			return m, nil
		}
	case "left", "right", "tab":
		if m.focus == focusListing {
			m.switchTab()
			return m, nil
		}
	case "c":
		if m.focus == focusViewing {
			m.composer.Reset()
			m.focus = focusComposing
			return m, m.composer.Focus()
		}
	case "x":
		if m.focus == focusViewing && m.activeTab == ticket.StatusOpen {
			return m, m.closeTicketCmd()
		}
	case "a":
		if m.focus == focusViewing {
			return m, m.assignSelfCmd()
		}
	}

	return m.forwardToFocused(msg)
}

func (m *model) switchTab() {
	if m.activeTab == ticket.StatusOpen {
		m.activeTab = ticket.StatusClosed
	} else {
		m.activeTab = ticket.StatusOpen
	}
	m.syncSelection()
}

func (m model) commitComment() (tea.Model, tea.Cmd) {
	message := strings.TrimSpace(m.composer.Value())
	if message == "" {
		m.setStatus("Comment is empty", statusError)
		return m, nil
	}
	item, ok := m.currentItem()
	if !ok {
		m.setStatus("No ticket selected", statusError)
		return m, nil
	}

	m.composer.Reset()
	m.composer.Blur()
	m.focus = focusViewing
	return m, m.commentCmd(item.ticket.ID, message)
}

func (m *model) handleTicketsLoaded(msg ticketsLoadedMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Load failed: %v", msg.err), statusError)
		return
	}

	setItems := func(l *list.Model, tickets []ticket.Ticket) {
		items := make([]list.Item, 0, len(tickets))
		for _, t := range tickets {
			items = append(items, ticketItem{ticket: t})
		}
		l.SetItems(items)
		if len(items) > 0 && l.Index() < 0 {
			l.Select(0)
		}
	}
	setItems(&m.openList, msg.open)
	setItems(&m.closedList, msg.closed)

	if m.selectedID != uuid.Nil {
		m.selectByID(m.selectedID)
	}
	m.syncSelection()

	if failed := len(msg.report.Failures); failed > 0 {
		m.setStatus(fmt.Sprintf("%d document(s) could not be loaded", failed), statusError)
	}
}

func (m model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Stay in the current state; the failure is transient feedback.
		m.setStatus(fmt.Sprintf("%s failed: %v", msg.verb, msg.err), statusError)
		return m, nil
	}
	m.selectedID = msg.ticket.ID
	m.detail.SetTicket(msg.ticket)
	m.setStatus(fmt.Sprintf("%s %s", msg.verb, shortID(msg.ticket.ID)), statusInfo)
	if msg.ticket.Status != m.activeTab {
		m.activeTab = msg.ticket.Status
	}
	return m, m.loadTicketsCmd()
}

func (m *model) activeList() *list.Model {
	if m.activeTab == ticket.StatusClosed {
		return &m.closedList
	}
	return &m.openList
}

func (m model) currentItem() (ticketItem, bool) {
	l := m.openList
	if m.activeTab == ticket.StatusClosed {
		l = m.closedList
	}
	item := l.SelectedItem()
	if item == nil {
		return ticketItem{}, false
	}
	current, ok := item.(ticketItem)
	return current, ok
}

func (m *model) syncSelection() {
	item, ok := m.currentItem()
	if !ok {
		m.selectedID = uuid.Nil
		m.detail.SetTicket(ticket.Ticket{})
		return
	}
	if item.ticket.ID == m.selectedID {
		return
	}
	m.selectedID = item.ticket.ID
	m.detail.SetTicket(item.ticket)
}

func (m *model) selectByID(id uuid.UUID) {
	for _, l := range []*list.Model{&m.openList, &m.closedList} {
		for i, item := range l.Items() {
			if ti, ok := item.(ticketItem); ok && ti.ticket.ID == id {
				l.Select(i)
				return
			}
		}
	}
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) resize() {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	m.openList.SetSize(listWidth, listHeight)
	m.closedList.SetSize(listWidth, listHeight)

	detailWidth := rightWidth - 4
	if detailWidth < 1 {
		detailWidth = 1
	}
	detailHeight := contentHeight - 2
	if detailHeight < 1 {
		detailHeight = 1
	}
	m.detail.SetSize(detailWidth, detailHeight)
	m.composer.Width = m.width - 6
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tickets..."
	}

	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	listPane := m.renderPane(m.activeList().View(), leftWidth, contentHeight, m.focus == focusListing)
	detailPane := m.renderPane(m.detail.View(), rightWidth, contentHeight, m.focus != focusListing)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	bottom := m.renderStatusLine()
	if m.focus == focusComposing {
		bottom = m.composer.View()
	}

	return strings.Join([]string{m.renderTabs(), content, m.renderHelpLine(), bottom}, "\n")
}

func (m model) renderTabs() string {
	parts := make([]string, 0, 2)
	for _, status := range ticket.ValidStatuses() {
		label := "Open"
		if status == ticket.StatusClosed {
			label = "Closed"
		}
		style := tabInactiveStyle
		if status == m.activeTab {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	spacerWidth := m.width - lipgloss.Width(content)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return tabBarStyle.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth))
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderHelpLine() string {
	var text string
	switch m.focus {
	case focusListing:
		text = "up/down move | left/right switch tab | enter view | q quit"
	case focusViewing:
		text = "up/down scroll | c comment | a assign to me | x close | esc back"
	case focusComposing:
		text = "enter send | esc cancel"
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) renderStatusLine() string {
	if strings.TrimSpace(m.status) == "" {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(truncateText(m.status, m.width))
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

type ticketsLoadedMsg struct {
	open   []ticket.Ticket
	closed []ticket.Ticket
	report ticket.ScanReport
	err    error
}

type mutationDoneMsg struct {
	verb   string
	ticket ticket.Ticket
	err    error
}

func (m model) loadTicketsCmd() tea.Cmd {
	return func() tea.Msg {
		tickets, report, err := m.store.List(ticket.ListFilter{})
		if err != nil {
			return ticketsLoadedMsg{err: err}
		}
		var open, closed []ticket.Ticket
		for _, t := range tickets {
			if t.Status == ticket.StatusClosed {
				closed = append(closed, t)
			} else {
				open = append(open, t)
			}
		}
		return ticketsLoadedMsg{open: open, closed: closed, report: report}
	}
}

// mutateCmd runs a load -> transform -> save cycle and reports the freshly
// persisted ticket. Loading first defends against this process's own view
// going stale when another process mutated the ticket concurrently.
func (m model) mutateCmd(id uuid.UUID, verb string, transform func(ticket.Ticket) (ticket.Ticket, error)) tea.Cmd {
	return func() tea.Msg {
		current, err := m.store.Load(id)
		if err != nil {
			return mutationDoneMsg{verb: verb, err: err}
		}
		updated, err := transform(current)
		if err != nil {
			return mutationDoneMsg{verb: verb, err: err}
		}
		if err := m.store.Save(updated); err != nil {
			return mutationDoneMsg{verb: verb, err: err}
		}
		persisted, err := m.store.Load(updated.ID)
		if err != nil {
			return mutationDoneMsg{verb: verb, err: err}
		}
		return mutationDoneMsg{verb: verb, ticket: persisted}
	}
}

func (m model) commentCmd(id uuid.UUID, message string) tea.Cmd {
	return m.mutateCmd(id, "Commented on", func(t ticket.Ticket) (ticket.Ticket, error) {
		return ticket.AddComment(t, m.user.ID, m.user.Name, message, time.Now())
	})
}

func (m model) closeTicketCmd() tea.Cmd {
	item, ok := m.currentItem()
	if !ok {
		return func() tea.Msg {
			return mutationDoneMsg{verb: "Close", err: fmt.Errorf("no ticket selected")}
		}
	}
	return m.mutateCmd(item.ticket.ID, "Closed", ticket.Close)
}

func (m model) assignSelfCmd() tea.Cmd {
	item, ok := m.currentItem()
	if !ok {
		return func() tea.Msg {
			return mutationDoneMsg{verb: "Assign", err: fmt.Errorf("no ticket selected")}
		}
	}
	return m.mutateCmd(item.ticket.ID, "Assigned", func(t ticket.Ticket) (ticket.Ticket, error) {
		return ticket.Assign(t, ticket.Assignee{ID: m.user.ID, Name: m.user.Name}), nil
	})
}
