// Shared helpers for unitracker CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// userErrors are the failures caused by what the user asked for, as
// opposed to the environment failing underneath.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidName,
	types.ErrUnknownColumn,
	types.ErrSameFile,
	types.ErrEmptyTable,
	types.ErrValidation,
}

// exitCodeFor maps an error to the CLI exit code contract.
func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return exitUserError
		}
	}
	return exitSysError
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// parseColumnFilter splits a column=substring argument.
func parseColumnFilter(arg string) (column, substr string, err error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid filter %q (expected column=substring)", arg)
	}
	return parts[0], parts[1], nil
}

// confirmOverwrite asks before replacing the live collection, unless --yes
// was given. Non-interactive import paths should pass force=true.
func confirmOverwrite(force bool, what string) (bool, error) {
	if force {
		return true, nil
	}
	fmt.Printf("Importing %s replaces the current collection. Continue? [y/N] ", what)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
