package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/ticket"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	t, err := resolveTicket(store, args[0])
	if err != nil {
		return err
	}

	closed, err := ticket.Close(t)
	if err != nil {
		return err
	}
	if err := store.Save(closed); err != nil {
		return err
	}

	fmt.Printf("Closed ticket %s: %s\n", shortID(closed.ID), closed.Title)
	return nil
}
