package cli

import (
	gocontext "context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dispatchboard/internal/core/mission"
	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/wire"
)

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Manage missions",
	Long:  "Create, edit, assign, complete and delete missions of the running shift",
}

var missionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new mission",
	Long: `Create a new mission. The mission number defaults to the next free one.

Examples:
  board mission create --location "Bühne" --reason "Kollaps" --squad 4,7
  board mission create -l Eingang -r Sturz --number 012`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		squadArgs, _ := cmd.Flags().GetStringSlice("squad")
		squads, err := parseIDs("squad", squadArgs)
		if err != nil {
			return err
		}

		req := primary.CreateMissionRequest{SquadIDs: squads}
		req.MissionNumber, _ = cmd.Flags().GetString("number")
		req.Location, _ = cmd.Flags().GetString("location")
		req.Reason, _ = cmd.Flags().GetString("reason")
		req.AlarmingEntity, _ = cmd.Flags().GetString("alarmed-by")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Notes, _ = cmd.Flags().GetString("notes")

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.MissionAdapter().Create(ctx, req)
	},
}

var missionEditCmd = &cobra.Command{
	Use:   "edit <mission-id> <field> [value]",
	Short: "Edit a mission field",
	Long: `Edit one mission field: notes, description, location, reason,
alarming_entity or mission_number.

Without a value the new text is read from the terminal. While typing, polls
keep the field as it is on screen.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		missionID, err := parseID("mission", args[0])
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		if len(args) == 2 {
			return withPolling(ctx, wire.Poller(nil).Run, func(ctx gocontext.Context) error {
				return wire.MissionAdapter().EditInteractive(ctx, missionID, args[1])
			})
		}
		return wire.MissionAdapter().Edit(ctx, missionID, args[1], args[2])
	},
}

// fieldShortcut builds "mission note|describe|locate <id> [text]".
func fieldShortcut(use, short string, field snapshot.Field) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <mission-id> [text]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer wire.Close()
			missionID, err := parseID("mission", args[0])
			if err != nil {
				return err
			}

			ctx := NewContext()
			if err := syncBoard(ctx); err != nil {
				return err
			}
			if len(args) == 1 {
				return withPolling(ctx, wire.Poller(nil).Run, func(ctx gocontext.Context) error {
					return wire.MissionAdapter().EditInteractive(ctx, missionID, string(field))
				})
			}
			return wire.MissionAdapter().Edit(ctx, missionID, string(field), strings.Join(args[1:], " "))
		},
	}
}

var missionAssignCmd = &cobra.Command{
	Use:   "assign <mission-id> <squad-id>",
	Short: "Assign a squad to a mission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		missionID, err := parseID("mission", args[0])
		if err != nil {
			return err
		}
		squadID, err := parseID("squad", args[1])
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.MissionAdapter().Assign(ctx, missionID, squadID)
	},
}

var missionCompleteCmd = &cobra.Command{
	Use:   "complete <mission-id>",
	Short: "Complete a mission",
	Long: `Close a mission with an outcome. Handover details (--arm-*) are kept
only for outcomes that hand the patient over to an ambulance.

Examples:
  board mission complete 12 --outcome Belassen
  board mission complete 12 --outcome ARM --arm-id 4711 --arm-type RTW --naca 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		missionID, err := parseID("mission", args[0])
		if err != nil {
			return err
		}

		req := primary.CompleteMissionRequest{MissionID: missionID}
		req.CompletionRequest = completionFromFlags(cmd)

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.MissionAdapter().Complete(ctx, req)
	},
}

func completionFromFlags(cmd *cobra.Command) mission.CompletionRequest {
	var c mission.CompletionRequest
	c.Outcome, _ = cmd.Flags().GetString("outcome")
	c.ArmID, _ = cmd.Flags().GetString("arm-id")
	c.ArmType, _ = cmd.Flags().GetString("arm-type")
	c.ArmNotes, _ = cmd.Flags().GetString("arm-notes")
	c.NacaScore, _ = cmd.Flags().GetString("naca")
	return c
}

var missionDeleteCmd = &cobra.Command{
	Use:   "delete <mission-id>",
	Short: "Delete a mission",
	Long:  "Delete a mission. A reason is required and recorded in the audit trail.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		missionID, err := parseID("mission", args[0])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.MissionAdapter().Delete(ctx, missionID, reason)
	},
}

var missionLogsCmd = &cobra.Command{
	Use:   "logs <mission-id>",
	Short: "Show the audit trail of a mission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		missionID, err := parseID("mission", args[0])
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Logs(NewContext(), missionID)
	},
}

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	// Add flags
	missionCreateCmd.Flags().StringP("location", "l", "", "Mission location (required)")
	missionCreateCmd.Flags().StringP("reason", "r", "", "Reason for the call (required)")
	missionCreateCmd.Flags().String("number", "", "Mission number (default: next free)")
	missionCreateCmd.Flags().String("alarmed-by", "", "Who raised the alarm")
	missionCreateCmd.Flags().StringP("description", "d", "", "Description")
	missionCreateCmd.Flags().StringP("notes", "n", "", "Notes")
	missionCreateCmd.Flags().StringSliceP("squad", "s", nil, "Squad ids to assign (repeatable or comma separated)")
	_ = missionCreateCmd.MarkFlagRequired("location")
	_ = missionCreateCmd.MarkFlagRequired("reason")

	missionCompleteCmd.Flags().StringP("outcome", "o", "", "Outcome (required)")
	missionCompleteCmd.Flags().String("arm-id", "", "Handover: ambulance id")
	missionCompleteCmd.Flags().String("arm-type", "", "Handover: ambulance type")
	missionCompleteCmd.Flags().String("arm-notes", "", "Handover: notes")
	missionCompleteCmd.Flags().String("naca", "", "NACA score")
	_ = missionCompleteCmd.MarkFlagRequired("outcome")

	missionDeleteCmd.Flags().String("reason", "", "Reason for deleting (required)")
	_ = missionDeleteCmd.MarkFlagRequired("reason")

	// Add subcommands
	missionCmd.AddCommand(missionCreateCmd)
	missionCmd.AddCommand(missionEditCmd)
	missionCmd.AddCommand(fieldShortcut("note", "Set mission notes", snapshot.FieldNotes))
	missionCmd.AddCommand(fieldShortcut("describe", "Set mission description", snapshot.FieldDescription))
	missionCmd.AddCommand(fieldShortcut("locate", "Set mission location", snapshot.FieldLocation))
	missionCmd.AddCommand(missionAssignCmd)
	missionCmd.AddCommand(missionCompleteCmd)
	missionCmd.AddCommand(missionDeleteCmd)
	missionCmd.AddCommand(missionLogsCmd)

	return missionCmd
}
