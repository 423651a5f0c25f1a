package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/dispatchboard/internal/adapters/cli"
	"github.com/example/dispatchboard/internal/core/transition"
	"github.com/example/dispatchboard/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status <squad-id> <code>",
	Short: "Set a squad's status",
	Long: `Set a squad's status (2, 3, 4, 7, 8, Pause, NEB).

Status 7 asks for the drop-off point when Ambulanz units are on the board.
Status 2 and NEB ask, mission by mission, whether to release the squad from
its open missions. Answer the prompts or pass them as flags.

Examples:
  board status 4 3
  board status 4 7 --ambulanz 9
  board status 4 7 --destination "Klinikum Nord"
  board status 4 2 --resolve remove`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer wire.Close()
		squadID, err := parseID("squad", args[0])
		if err != nil {
			return err
		}

		ambulanz, _ := cmd.Flags().GetInt("ambulanz")
		destination, _ := cmd.Flags().GetString("destination")
		resolve, _ := cmd.Flags().GetString("resolve")

		answers, err := statusAnswers(ambulanz, destination, resolve)
		if err != nil {
			return err
		}

		ctx := NewContext()
		if err := syncBoard(ctx); err != nil {
			return err
		}
		return wire.StatusAdapter().Set(ctx, squadID, args[1], answers)
	},
}

// statusAnswers builds the prompt answers given as flags.
func statusAnswers(ambulanz int, destination, resolve string) (cliadapter.StatusAnswers, error) {
	a := cliadapter.StatusAnswers{Ambulanz: ambulanz, Destination: destination}
	if resolve != "" {
		r, err := transition.ParseResolution(resolve)
		if err != nil {
			return cliadapter.StatusAnswers{}, err
		}
		a.Resolution = r
	}
	return a, nil
}

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	statusCmd.Flags().Int("ambulanz", 0, "Answer the destination prompt with this Ambulanz squad id")
	statusCmd.Flags().String("destination", "", "Answer the destination prompt with free text")
	statusCmd.Flags().String("resolve", "", "Answer every open-mission conflict (remove or keep)")
	return statusCmd
}
