// Package main implements the ticket CLI tool.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/internal/paths"
	"github.com/devsuite/ticket/internal/tickettui"
	"github.com/devsuite/ticket/ticket"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Track tickets inside the repository",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	user, err := config.LoadUserConfig()
	if err != nil {
		return err
	}
	return tickettui.Run(store, user)
}

// openStore locates the enclosing repository and returns its ticket store.
func openStore() (*ticket.Store, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	repoRoot, err := paths.FindRepoRoot(cwd)
	if err != nil {
		return nil, err
	}
	return ticket.Open(paths.TicketRoot(repoRoot)), nil
}

// resolveTicket loads a ticket by full id or by unique id prefix.
func resolveTicket(store *ticket.Store, arg string) (ticket.Ticket, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return store.Load(id)
	}

	prefix := strings.ToLower(arg)
	tickets, _, err := store.List(ticket.ListFilter{})
	if err != nil {
		return ticket.Ticket{}, err
	}

	var matches []ticket.Ticket
	for _, t := range tickets {
		if strings.HasPrefix(t.ID.String(), prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return ticket.Ticket{}, fmt.Errorf("%w: %s", ticket.ErrTicketNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return ticket.Ticket{}, fmt.Errorf("id prefix %q matches %d tickets", arg, len(matches))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
