// Command modulith verifies Spring-Modulith-style application module
// boundaries against a previously extracted Java class graph, grounded on
// the teacher's cmd/pyscn/main.go cobra root command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archlens/modulith/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "modulith",
	Short: "Verifies application module boundaries in a Java class graph",
	Long: `modulith checks a Spring-Modulith-style application against its
declared module boundaries: permitted inter-module dependencies,
encapsulation of internal types, absence of package cycles, valid
sub-module nesting, and constructor-injection discipline.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostic output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (.modulith.toml)")

	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewModulesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
