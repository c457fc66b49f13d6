package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlens/modulith/internal/version"
)

// NewVersionCmd creates the `modulith version` command, grounded on
// cmd/pyscn/version.go.
func NewVersionCmd() *cobra.Command {
	short := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Short())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Info())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only the version number")
	return cmd
}
