package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/markdown"
	"github.com/devsuite/ticket/internal/ui"
	"github.com/devsuite/ticket/ticket"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one ticket with its comment thread",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

const showWidth = 80

var (
	showTitleStyle  = lipgloss.NewStyle().Bold(true)
	showLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	showMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	showAuthorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	t, err := resolveTicket(store, args[0])
	if err != nil {
		return err
	}

	fmt.Print(renderTicket(t))
	return nil
}

func renderTicket(t ticket.Ticket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", showTitleStyle.Render(t.Title), showMutedStyle.Render("["+string(t.Status)+"]"))
	fmt.Fprintf(&b, "%s\n\n", showMutedStyle.Render(t.ID.String()))

	b.WriteString(showLabelStyle.Render("Description"))
	b.WriteByte('\n')
	if description := markdown.Render(t.Description, showWidth); description != "" {
		b.WriteString(description)
	} else {
		b.WriteString(showMutedStyle.Render("(none)"))
	}
	b.WriteString("\n\n")

	b.WriteString(showLabelStyle.Render("Assignees"))
	b.WriteByte('\n')
	if len(t.Assignees) == 0 {
		b.WriteString(showMutedStyle.Render("(none)"))
		b.WriteByte('\n')
	} else {
		for _, a := range t.Assignees {
			fmt.Fprintf(&b, "%s  %s\n", a.Name, showMutedStyle.Render(a.ID.String()))
		}
	}
	b.WriteByte('\n')

	b.WriteString(showLabelStyle.Render(fmt.Sprintf("Comments (%d)", len(t.Comments))))
	b.WriteByte('\n')
	for _, c := range t.Comments {
		header := fmt.Sprintf("%s  %s (%s)",
			showAuthorStyle.Render(c.AuthorName),
			ui.FormatTimestamp(c.CreatedAt),
			ui.FormatTimeAgo(c.CreatedAt, time.Now()),
		)
		fmt.Fprintf(&b, "%s\n%s\n\n", header, c.Message)
	}

	return b.String()
}
