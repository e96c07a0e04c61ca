// Delete command removes a game and its attached rows.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a game from the collection",
	Long: `Delete removes a game along with its genre and platform tags and its
series membership. A series left with no members disappears from the
series listing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tracker.Games().Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}
