// Import commands replace the collection from a snapshot or a document.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the collection from a file",
}

var importSnapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Replace the store file with the snapshot at <path>",
	Long: `Snapshot validates the candidate store file and, only when it passes,
copies it over the live store. A rejected candidate leaves the current
collection untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmOverwrite(importYes, "a snapshot")
		if err != nil || !ok {
			return err
		}
		if err := tracker.Transfer().ImportSnapshot(args[0]); err != nil {
			return err
		}
		fmt.Println("Imported snapshot from", args[0])
		return nil
	},
}

var importDocumentCmd = &cobra.Command{
	Use:   "document <path>",
	Short: "Rebuild the collection from the JSON document at <path>",
	Long: `Document replays the JSON tree into a scratch store and, only when
every row loads, swaps it in as the live store. Any malformed record
discards the scratch and leaves the current collection untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmOverwrite(importYes, "a document")
		if err != nil || !ok {
			return err
		}
		if err := tracker.Transfer().ImportDocument(args[0]); err != nil {
			return err
		}
		fmt.Println("Imported document from", args[0])
		return nil
	},
}

func init() {
	importCmd.PersistentFlags().BoolVar(&importYes, "yes", false, "skip the overwrite confirmation")
	importCmd.AddCommand(importSnapshotCmd)
	importCmd.AddCommand(importDocumentCmd)
}
