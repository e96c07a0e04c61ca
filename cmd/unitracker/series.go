// Series command prints the derived series rollups.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List series rollups",
	Long: `Series prints every series in the collection with its game count and
summed playtime. The listing is unpaginated and derived from the games:
series appear and disappear as their member games do.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := tracker.Projector(prefs.ItemsPerPage).ListSeries()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(series)
		}
		if len(series) == 0 {
			fmt.Println("No series in the collection")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SERIES\tGAMES\tTOTAL HOURS")
		for _, sr := range series {
			fmt.Fprintf(w, "%s\t%d\t%g\n", sr.Name, sr.NumGames, sr.TotalPlaytime)
		}
		return w.Flush()
	},
}
