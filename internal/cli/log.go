package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Audit trail and local write journal",
	Long:  "Add entries to the server's audit trail, read its change feed, and inspect the writes this console performed",
}

var logAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a free-text entry to the audit trail",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		return wire.LogAdapter().Add(NewContext(), strings.Join(args, " "))
	},
}

var logChangesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent changes on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.LogAdapter().Changes(NewContext(), limit)
	},
}

var logJournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show writes performed by this console",
	Long: `Show the local journal of backend writes, newest first.

Examples:
  board log journal --failed
  board log journal --squad 4 -n 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		var filters secondary.JournalFilters
		filters.Kind, _ = cmd.Flags().GetString("kind")
		filters.SquadID, _ = cmd.Flags().GetInt("squad")
		filters.MissionID, _ = cmd.Flags().GetInt("mission")
		filters.FailedOnly, _ = cmd.Flags().GetBool("failed")
		filters.Limit, _ = cmd.Flags().GetInt("limit")
		return wire.LogAdapter().Journal(NewContext(), filters)
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old journal entries",
	Long:  "Delete local journal entries older than the specified number of days (default 30)",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		days, _ := cmd.Flags().GetInt("days")
		return wire.LogAdapter().Prune(NewContext(), days)
	},
}

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	logChangesCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")

	logJournalCmd.Flags().String("kind", "", "Filter by write kind (e.g. status_write)")
	logJournalCmd.Flags().Int("squad", 0, "Filter by squad id")
	logJournalCmd.Flags().Int("mission", 0, "Filter by mission id")
	logJournalCmd.Flags().Bool("failed", false, "Only failed writes")
	logJournalCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")

	logPruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logChangesCmd)
	logCmd.AddCommand(logJournalCmd)
	logCmd.AddCommand(logPruneCmd)

	return logCmd
}
