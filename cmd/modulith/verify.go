package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/archlens/modulith/app"
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
	svc "github.com/archlens/modulith/service"
)

// NewVerifyCmd creates the `modulith verify` command, grounded on
// cmd/pyscn/deps.go.
func NewVerifyCmd() *cobra.Command {
	var (
		format     string
		strategy   string
		outputPath string
		noColor    bool
		roots      []string
	)

	cmd := &cobra.Command{
		Use:   "verify <class-graph.json>",
		Short: "Verify application module boundaries against a class graph",
		Long: `verify loads a previously extracted class graph (JSON, see
modulith init --path for the accompanying .modulith.toml) and checks it
against the configured application module boundaries, reporting a
non-zero exit status if any architectural violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))

			importer := classmodel.NewFileImporter(args[0])
			uc, err := app.NewVerifyUseCaseBuilder().
				WithImporter(importer).
				WithAnnotationSource(importer).
				WithCatalog(domain.DefaultStereotypeCatalog()).
				WithFormatter(svc.NewVerifyFormatter(color)).
				Build()
			if err != nil {
				return err
			}

			req := domain.VerifyRequest{
				RootPackages: roots,
				ConfigPath:   configPath,
				Strategy:     strategy,
				Format:       domain.OutputFormat(format),
				OutputPath:   outputPath,
			}
			if outputPath == "" {
				req.OutputWriter = cmd.OutOrStdout()
			}

			err = uc.Execute(context.Background(), req)
			if archErr, ok := err.(*domain.ArchitectureViolationError); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), archErr.Error())
				return errSilentViolations
			}
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: text, json, yaml, dot, csv (default from config)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Detection strategy override: direct-sub-packages, explicitly-annotated")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI violation highlighting")
	cmd.Flags().StringSliceVar(&roots, "root", nil, "Root package(s) to analyze (repeatable)")

	return cmd
}

// errSilentViolations signals a non-zero exit after the violation report has
// already been printed, avoiding cobra's default double-printing of the error.
var errSilentViolations = &silentError{}

type silentError struct{}

func (*silentError) Error() string { return "" }
