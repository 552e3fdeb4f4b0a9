package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/ui"
	"github.com/devsuite/ticket/ticket"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listStatus string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", "", "Limit to one status (open or closed)")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	var filter ticket.ListFilter
	if listStatus != "" {
		status := ticket.Status(listStatus)
		filter.Status = &status
	}

	tickets, report, err := store.List(filter)
	if err != nil {
		return err
	}

	if len(tickets) == 0 {
		fmt.Println("No tickets")
	} else {
		rows := make([][]string, 0, len(tickets))
		for _, t := range tickets {
			rows = append(rows, []string{
				shortID(t.ID),
				ui.TruncateTableCell(t.Title),
				string(t.Status),
				strconv.Itoa(len(t.Assignees)),
				strconv.Itoa(len(t.Comments)),
			})
		}
		fmt.Print(ui.FormatTable(
			[]string{"ID", "TITLE", "STATUS", "ASSIGNEES", "COMMENTS"},
			rows,
		))
	}

	// A bad document never fails the listing; report it and move on.
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", failure.Path, failure.Err)
	}
	return nil
}
