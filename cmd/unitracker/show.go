// Show command prints a single game with its tags.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// gameDetail is the show output shape: the record plus its tag sets.
type gameDetail struct {
	Name                  string   `json:"name"`
	Progress              int      `json:"progress"`
	HoursPlayed           float64  `json:"hours_played"`
	StartDate             *string  `json:"start_date"`
	EndDate               *string  `json:"end_date"`
	TotalAchievements     int      `json:"total_achievements"`
	CompletedAchievements int      `json:"completed_achievements"`
	SeriesName            *string  `json:"series_name"`
	Genres                []string `json:"genres"`
	Platforms             []string `json:"platforms"`
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one game's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tracker.Games().Get(args[0])
		if err != nil {
			return err
		}
		genres, err := tracker.Games().Genres(game.Name)
		if err != nil {
			return err
		}
		platforms, err := tracker.Games().Platforms(game.Name)
		if err != nil {
			return err
		}

		detail := gameDetail{
			Name:                  game.Name,
			Progress:              game.Progress,
			HoursPlayed:           game.HoursPlayed,
			StartDate:             game.StartDate,
			EndDate:               game.EndDate,
			TotalAchievements:     game.TotalAchievements,
			CompletedAchievements: game.CompletedAchievements,
			SeriesName:            game.SeriesName,
			Genres:                genres,
			Platforms:             platforms,
		}
		if flagJSON {
			return printJSON(detail)
		}
		printDetail(detail)
		return nil
	},
}

func printDetail(d gameDetail) {
	fmt.Println(d.Name)
	fmt.Printf("  progress:     %d%%\n", d.Progress)
	fmt.Printf("  hours played: %g\n", d.HoursPlayed)
	fmt.Printf("  started:      %s\n", orDash(d.StartDate))
	fmt.Printf("  finished:     %s\n", orDash(d.EndDate))
	fmt.Printf("  achievements: %d/%d\n", d.CompletedAchievements, d.TotalAchievements)
	fmt.Printf("  series:       %s\n", orDash(d.SeriesName))
	fmt.Printf("  genres:       %s\n", orDashList(d.Genres))
	fmt.Printf("  platforms:    %s\n", orDashList(d.Platforms))
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func orDashList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
