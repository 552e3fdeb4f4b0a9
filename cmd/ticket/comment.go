package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/ticket"
)

var commentCmd = &cobra.Command{
	Use:   "comment <id> <message>",
	Short: "Add a comment to a ticket",
	Args:  cobra.ExactArgs(2),
	RunE:  runComment,
}

func init() {
	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	user, err := config.LoadUserConfig()
	if err != nil {
		return err
	}
	t, err := resolveTicket(store, args[0])
	if err != nil {
		return err
	}

	updated, err := ticket.AddComment(t, user.ID, user.Name, args[1], time.Now())
	if err != nil {
		return err
	}
	if err := store.Save(updated); err != nil {
		return err
	}

	fmt.Printf("Commented on ticket %s\n", shortID(updated.ID))
	return nil
}
