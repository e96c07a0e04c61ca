// Package main provides the unitracker CLI, a local-first tracker for a
// personal video game collection backed by a single SQLite file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "unitracker:", err)
		os.Exit(exitCodeFor(err))
	}
}
