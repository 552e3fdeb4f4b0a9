package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/ticket"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade every stored ticket to the current document format",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	report, err := store.MigrateAll()
	if err != nil {
		return err
	}

	upgraded, unchanged, failed := report.Counts()
	fmt.Printf("Migrated %d ticket(s), %d already current, %d failed\n", upgraded, unchanged, failed)

	// Per-document failures never abort the run; surface each one and let
	// the caller decide what to do with the leftovers.
	for _, outcome := range report.Outcomes {
		if outcome.Action == ticket.MigrateFailed {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", outcome.Path, outcome.Err)
		}
	}
	return nil
}
