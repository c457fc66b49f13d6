package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archlens/modulith/internal/config"
)

// NewInitCmd creates the `modulith init` command, a SUPPLEMENTED FEATURE
// grounded on cmd/pyscn/init.go.
func NewInitCmd() *cobra.Command {
	force := false
	configPath := ".modulith.toml"

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .modulith.toml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			if _, err := os.Stat(abs); err == nil && !force {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", abs)
			}
			if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(abs), err)
			}
			if err := config.WriteSample(abs); err != nil {
				return err
			}
			rel, err := filepath.Rel(".", abs)
			if err != nil {
				rel = abs
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration file created: %s\n", rel)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVarP(&configPath, "path", "p", ".modulith.toml", "Configuration file path to create")
	return cmd
}
