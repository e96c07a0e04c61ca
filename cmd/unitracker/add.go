// Add command inserts a new game from flag values.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

var (
	addProgress  int
	addHours     float64
	addStart     string
	addEnd       string
	addTotalAch  int
	addDoneAch   int
	addSeries    string
	addGenres    []string
	addPlatforms []string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a game to the collection",
	Long: `Add inserts a new game. Only the flags actually given are stored;
omitted fields stay unset rather than defaulting to zero values.

Example:
  unitracker add "Hollow Knight" --progress 85 --hours 52.5 \
      --genre Metroidvania --genre Indie --platform Switch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{types.ColName: args[0]}
		collectGameFields(cmd, fields)

		if err := tracker.Games().Add(fields, addGenres, addPlatforms); err != nil {
			return err
		}
		fmt.Printf("Added %q\n", args[0])
		return nil
	},
}

func init() {
	registerGameFlags(addCmd)
}

// registerGameFlags declares the per-column flags shared by add and edit.
func registerGameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&addProgress, "progress", 0, "completion percentage (0-100)")
	cmd.Flags().Float64Var(&addHours, "hours", 0, "hours played")
	cmd.Flags().StringVar(&addStart, "start-date", "", "date started")
	cmd.Flags().StringVar(&addEnd, "end-date", "", "date finished")
	cmd.Flags().IntVar(&addTotalAch, "total-achievements", 0, "total achievement count")
	cmd.Flags().IntVar(&addDoneAch, "completed-achievements", 0, "completed achievement count")
	cmd.Flags().StringVar(&addSeries, "series", "", "series the game belongs to")
	cmd.Flags().StringArrayVar(&addGenres, "genre", nil, "genre tag (repeatable)")
	cmd.Flags().StringArrayVar(&addPlatforms, "platform", nil, "platform tag (repeatable)")
}

// collectGameFields copies the column flags the user actually set into the
// sparse field map.
func collectGameFields(cmd *cobra.Command, fields map[string]any) {
	if cmd.Flags().Changed("progress") {
		fields[types.ColProgress] = addProgress
	}
	if cmd.Flags().Changed("hours") {
		fields[types.ColHoursPlayed] = addHours
	}
	if cmd.Flags().Changed("start-date") {
		fields[types.ColStartDate] = addStart
	}
	if cmd.Flags().Changed("end-date") {
		fields[types.ColEndDate] = addEnd
	}
	if cmd.Flags().Changed("total-achievements") {
		fields[types.ColTotalAchievements] = addTotalAch
	}
	if cmd.Flags().Changed("completed-achievements") {
		fields[types.ColCompletedAchievements] = addDoneAch
	}
	if cmd.Flags().Changed("series") {
		fields[types.ColSeriesName] = addSeries
	}
}
