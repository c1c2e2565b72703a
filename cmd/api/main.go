package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paratus/tasks/cmd/api/commands"
)

// @title Paratus API
// @version 1.0
// @description Personal task management: collections, sections, tasks and the Today and Upcoming views.

// @contact.name Paratus
// @contact.url https://github.com/paratus/tasks

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:           "paratus",
		Short:         "Paratus task manager",
		Long:          `Paratus keeps collections of tasks grouped into sections, with Today and Upcoming views computed from due dates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewViewCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
