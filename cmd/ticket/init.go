package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devsuite/ticket/internal/config"
	"github.com/devsuite/ticket/internal/paths"
	"github.com/devsuite/ticket/ticket"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the ticket store and user config for this repository",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var initName string

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initName, "name", "", "Display name for the user config (defaults to $USER)")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	repoRoot, err := paths.FindRepoRoot(cwd)
	if err != nil {
		return err
	}

	name := initName
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		return fmt.Errorf("no user name: pass --name or set $USER")
	}

	user, err := config.CreateUserConfig(name)
	if err != nil {
		return err
	}
	if err := config.AddMaintainer(repoRoot, user); err != nil {
		return err
	}

	store := ticket.Open(paths.TicketRoot(repoRoot))
	if err := store.Init(); err != nil {
		return err
	}

	fmt.Printf("Initialized ticket store in %s\n", store.Root())
	fmt.Printf("Acting as %s (%s)\n", user.Name, user.ID)
	return nil
}
