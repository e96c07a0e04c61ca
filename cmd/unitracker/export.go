// Export commands write the collection out as a snapshot or a document.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection to a file",
}

var exportSnapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Copy the store file to <path>",
	Long: `Snapshot byte-copies the live store file. The result is itself a
valid store file; import it on another machine to move the collection
wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tracker.Transfer().ExportSnapshot(args[0]); err != nil {
			return err
		}
		fmt.Println("Exported snapshot to", args[0])
		return nil
	},
}

var exportDocumentCmd = &cobra.Command{
	Use:   "document <path>",
	Short: "Write the collection as a JSON document to <path>",
	Long: `Document writes every game, tag, and series row as one JSON tree. The
export fails when any table is empty, so a partially built collection is
never mistaken for a complete one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tracker.Transfer().ExportDocument(args[0]); err != nil {
			return err
		}
		fmt.Println("Exported document to", args[0])
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportSnapshotCmd)
	exportCmd.AddCommand(exportDocumentCmd)
}
