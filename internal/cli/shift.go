package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/wire"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Start, update and end the shift",
}

var shiftStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a shift",
	Long: `Start a shift at an event location.

Example:
  board shift start --location Stadtfest --address "Marktplatz 1" --start 14:00 --end 23:00 --locations Bühne,Eingang,Bar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		settings := shiftSettingsFromFlags(cmd)

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.ShiftAdapter().Start(ctx, settings)
	},
}

var shiftUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change the running shift",
	Long:  "Change shift settings. Only the flags given are sent.",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		settings := shiftSettingsFromFlags(cmd)
		if settings.Location == nil && settings.Address == nil && settings.StartTime == nil &&
			settings.EndTime == nil && settings.Password == nil && settings.Locations == nil {
			return fmt.Errorf("nothing to change")
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.ShiftAdapter().Update(ctx, settings)
	},
}

var shiftEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the shift and store the export",
	Long:  "End the running shift. The server's export document is stored in the configured export location.",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.ShiftAdapter().End(ctx)
	},
}

// shiftSettingsFromFlags sets only the fields whose flags were given.
func shiftSettingsFromFlags(cmd *cobra.Command) snapshot.ShiftSettings {
	var s snapshot.ShiftSettings
	set := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
		}
	}
	set("location", &s.Location)
	set("address", &s.Address)
	set("start", &s.StartTime)
	set("end", &s.EndTime)
	set("password", &s.Password)
	if cmd.Flags().Changed("locations") {
		s.Locations, _ = cmd.Flags().GetStringSlice("locations")
	}
	return s
}

func addShiftFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("location", "l", "", "Event location")
	cmd.Flags().String("address", "", "Address")
	cmd.Flags().String("start", "", "Planned start time")
	cmd.Flags().String("end", "", "Planned end time")
	cmd.Flags().String("password", "", "Shift password")
	cmd.Flags().StringSlice("locations", nil, "Predefined locations (comma separated)")
}

// ShiftCmd returns the shift command
func ShiftCmd() *cobra.Command {
	addShiftFlags(shiftStartCmd)
	addShiftFlags(shiftUpdateCmd)
	_ = shiftStartCmd.MarkFlagRequired("location")

	shiftCmd.AddCommand(shiftStartCmd)
	shiftCmd.AddCommand(shiftUpdateCmd)
	shiftCmd.AddCommand(shiftEndCmd)

	return shiftCmd
}
