// Edit command updates a game from flag values.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

var editRename string

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a game in the collection",
	Long: `Edit updates a game. Only the flags actually given change; the rest
of the record is left alone. --rename changes the game's name, carrying
its genre and platform tags along. Repeatable tag flags replace the full
tag set when given.

Example:
  unitracker edit "Hollow Knight" --progress 100 --end-date 2023-03-02
  unitracker edit "Okami" --rename "Okami HD"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		fields := map[string]any{}
		collectGameFields(cmd, fields)
		if cmd.Flags().Changed("rename") {
			fields[types.ColName] = editRename
		}

		genres, platforms, err := tagsForEdit(cmd, name)
		if err != nil {
			return err
		}

		if err := tracker.Games().Edit(name, fields, genres, platforms); err != nil {
			return err
		}
		fmt.Printf("Updated %q\n", name)
		return nil
	},
}

func init() {
	registerGameFlags(editCmd)
	editCmd.Flags().StringVar(&editRename, "rename", "", "new name for the game")
}

// tagsForEdit returns the tag sets to apply: the flag values when given,
// the game's current tags otherwise, so an untouched set survives the edit.
func tagsForEdit(cmd *cobra.Command, name string) (genres, platforms []string, err error) {
	genres = addGenres
	if !cmd.Flags().Changed("genre") {
		if genres, err = tracker.Games().Genres(name); err != nil {
			return nil, nil, err
		}
	}
	platforms = addPlatforms
	if !cmd.Flags().Changed("platform") {
		if platforms, err = tracker.Games().Platforms(name); err != nil {
			return nil, nil, err
		}
	}
	return genres, platforms, nil
}
