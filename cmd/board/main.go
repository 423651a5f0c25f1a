package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dispatchboard/internal/cli"
	"github.com/example/dispatchboard/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "board",
		Short:   "Dispatch board console for medical event squads",
		Version: version.String(),
		Long: `board is a console for the dispatch server of a medical event service.
It shows squads and missions, sets squad statuses and edits missions while
the board keeps polling the server.`,
		SilenceUsage: true,
	}

	// Dashboard
	rootCmd.AddCommand(cli.BoardCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	// Workflow
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.MissionCmd())
	rootCmd.AddCommand(cli.SquadCmd())
	rootCmd.AddCommand(cli.ShiftCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
