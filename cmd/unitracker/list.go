// List command prints one page of the games projection.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unitrackerhq/unitracker/internal/store"
)

var (
	listPage   int
	listFilter string
	listSort   string
	listDesc   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of the collection",
	Long: `List prints one page of the games listing, each row joined with its
genre and platform tags. Filtering and sorting apply to the fetched page.

Example:
  unitracker list
  unitracker list --page 2
  unitracker list --filter genres=rpg --sort hours_played --desc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projector := tracker.Projector(prefs.ItemsPerPage)
		page, err := projector.ListGames(listPage)
		if err != nil {
			return err
		}

		if listFilter != "" {
			column, substr, err := parseColumnFilter(listFilter)
			if err != nil {
				return err
			}
			if page, err = page.Filter(column, substr); err != nil {
				return err
			}
		}
		if listSort != "" {
			if page, err = page.SortBy(listSort, listDesc); err != nil {
				return err
			}
		}

		if flagJSON {
			return printJSON(page.Rows)
		}
		printListing(page)

		has, err := projector.HasNextPage()
		if err != nil {
			return err
		}
		if has {
			fmt.Printf("\nMore games on page %d\n", listPage+1)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 0, "page number, starting at 0")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "filter the page, as column=substring")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort the page by column")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
}

func printListing(page store.Projection) {
	if len(page.Rows) == 0 {
		fmt.Println("No games on this page")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROGRESS\tHOURS\tSERIES\tGENRES\tPLATFORMS")
	for _, row := range page.Rows {
		fmt.Fprintf(w, "%s\t%d%%\t%g\t%s\t%s\t%s\n",
			row.Name, row.Progress, row.HoursPlayed,
			row.SeriesName, row.Genres, row.Platforms)
	}
	w.Flush()
}
