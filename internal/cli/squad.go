package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/wire"
)

var squadCmd = &cobra.Command{
	Use:   "squad",
	Short: "Manage the squad roster",
	Long:  "Add, edit, delete, locate and reorder the squads of the running shift",
}

var squadAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a squad",
	Long: `Add a squad to the running shift.

Examples:
  board squad add "Trupp 4" --qualification San --service-numbers "12, 17"
  board squad add "Ambulanz Nord" --type Ambulanz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		req := snapshot.NewSquad{Name: args[0]}
		req.Qualification, _ = cmd.Flags().GetString("qualification")
		req.Type, _ = cmd.Flags().GetString("type")
		req.ServiceNumbers, _ = cmd.Flags().GetString("service-numbers")

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.SquadAdapter().Add(ctx, req)
	},
}

var squadEditCmd = &cobra.Command{
	Use:   "edit <squad-id>",
	Short: "Edit a squad",
	Long:  "Change name, qualification, type or service numbers. Only the flags given are sent.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		squadID, err := parseID("squad", args[0])
		if err != nil {
			return err
		}

		patch := squadPatchFromFlags(cmd)
		if patch == (snapshot.SquadPatch{}) {
			return fmt.Errorf("nothing to change: pass --name, --qualification, --type or --service-numbers")
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.SquadAdapter().Edit(ctx, squadID, patch)
	},
}

// squadPatchFromFlags sets only the fields whose flags were given.
func squadPatchFromFlags(cmd *cobra.Command) snapshot.SquadPatch {
	var patch snapshot.SquadPatch
	set := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
		}
	}
	set("name", &patch.Name)
	set("qualification", &patch.Qualification)
	set("type", &patch.Type)
	set("service-numbers", &patch.ServiceNumbers)
	return patch
}

var squadDeleteCmd = &cobra.Command{
	Use:   "delete <squad-id>",
	Short: "Delete a squad",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		squadID, err := parseID("squad", args[0])
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.SquadAdapter().Delete(ctx, squadID)
	},
}

var squadLocateCmd = &cobra.Command{
	Use:   "locate <squad-id> [location]",
	Short: "Set or clear a squad's location",
	Long:  "Set the location shown for a squad. Without a location the override is cleared.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		squadID, err := parseID("squad", args[0])
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.SquadAdapter().Locate(ctx, squadID, strings.Join(args[1:], " "))
	},
}

var squadReorderCmd = &cobra.Command{
	Use:   "reorder <squad-id>...",
	Short: "Set the display order",
	Long: `Set the display order of the squads. Every squad must be listed once.

Example:
  board squad reorder 4 7 2 9`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		order, err := parseIDs("squad", args)
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.SquadAdapter().Reorder(ctx, order)
	},
}

// SquadCmd returns the squad command
func SquadCmd() *cobra.Command {
	squadAddCmd.Flags().StringP("qualification", "q", "", "Qualification (e.g. San, RS, NFS)")
	squadAddCmd.Flags().StringP("type", "t", "Trupp", "Unit type: Trupp or Ambulanz")
	squadAddCmd.Flags().String("service-numbers", "", "Service numbers of the members")

	squadEditCmd.Flags().String("name", "", "New name")
	squadEditCmd.Flags().StringP("qualification", "q", "", "New qualification")
	squadEditCmd.Flags().StringP("type", "t", "", "New unit type")
	squadEditCmd.Flags().String("service-numbers", "", "New service numbers")

	squadCmd.AddCommand(squadAddCmd)
	squadCmd.AddCommand(squadEditCmd)
	squadCmd.AddCommand(squadDeleteCmd)
	squadCmd.AddCommand(squadLocateCmd)
	squadCmd.AddCommand(squadReorderCmd)

	return squadCmd
}
