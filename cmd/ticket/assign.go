package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/ticket"
)

var assignCmd = &cobra.Command{
	Use:   "assign <id> to me | assign <id> to them <user-id> <name>",
	Short: "Assign a ticket to yourself or to someone else",
	Args:  cobra.RangeArgs(3, 5),
	RunE:  runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	assignee, err := parseAssignee(args[1:])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	t, err := resolveTicket(store, args[0])
	if err != nil {
		return err
	}

	updated := ticket.Assign(t, assignee)
	if err := store.Save(updated); err != nil {
		return err
	}

	fmt.Printf("Assigned %s to ticket %s\n", assignee.Name, shortID(updated.ID))
	return nil
}

// parseAssignee reads the "to me" or "to them <user-id> <name>" tail of the
// assign command.
func parseAssignee(args []string) (ticket.Assignee, error) {
	if len(args) < 2 || args[0] != "to" {
		return ticket.Assignee{}, fmt.Errorf("usage: assign <id> to me | assign <id> to them <user-id> <name>")
	}

	switch args[1] {
	case "me":
		if len(args) != 2 {
			return ticket.Assignee{}, fmt.Errorf("usage: assign <id> to me")
		}
		user, err := config.LoadUserConfig()
		if err != nil {
			return ticket.Assignee{}, err
		}
		return ticket.Assignee{ID: user.ID, Name: user.Name}, nil
	case "them":
		if len(args) != 4 {
			return ticket.Assignee{}, fmt.Errorf("usage: assign <id> to them <user-id> <name>")
		}
		id, err := uuid.Parse(args[2])
		if err != nil {
			return ticket.Assignee{}, fmt.Errorf("parse assignee id %q: %w", args[2], err)
		}
		if args[3] == "" {
			return ticket.Assignee{}, fmt.Errorf("assignee name must not be empty")
		}
		return ticket.Assignee{ID: id, Name: args[3]}, nil
	default:
		return ticket.Assignee{}, fmt.Errorf("unknown assignee %q: use \"me\" or \"them\"", args[1])
	}
}
