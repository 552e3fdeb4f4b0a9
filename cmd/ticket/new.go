package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/editor"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create an open ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

var newDescription string

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Ticket description (skips $EDITOR)")
}

func runNew(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	description := newDescription
	if description == "" && !cmd.Flags().Changed("description") && editor.IsInteractive() {
		description, err = collectDescription(args[0])
		if err != nil {
			return err
		}
	}

	t, err := store.NewTicket(args[0], description)
	if err != nil {
		return err
	}

	fmt.Printf("Created ticket %s: %s\n", shortID(t.ID), t.Title)
	return nil
}

// collectDescription opens $EDITOR on a scratch file seeded with the title as
// a markdown heading and returns whatever the user saved.
func collectDescription(title string) (string, error) {
	dir, err := os.MkdirTemp("", "ticket-new-")
	if err != nil {
		return "", fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "description.md")
	seed := fmt.Sprintf("# %s\n\n", title)
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := editor.Edit(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read scratch file: %w", err)
	}
	description := string(data)
	if description == seed {
		return "", nil
	}
	return description, nil
}
