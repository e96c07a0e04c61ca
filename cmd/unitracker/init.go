// Init command for the unitracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unitrackerhq/unitracker/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration directory and store file",
	Long: `Init resolves the configuration directory and store file locations,
creates both with defaults when missing, and reports where they ended up.
Running init on an existing installation is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already created the config dir, the default
		// config.yaml, and the store file with its schema.
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		fmt.Println("Unitracker initialized")
		fmt.Println("  config:", configDir)
		fmt.Println("  store: ", tracker.Path())
		return nil
	},
}
