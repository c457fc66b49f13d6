package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/archlens/modulith/app"
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
	svc "github.com/archlens/modulith/service"
)

// NewModulesCmd creates the `modulith modules` command, grounded on
// cmd/pyscn/deps.go's describe-only sibling commands.
func NewModulesCmd() *cobra.Command {
	var (
		format     string
		strategy   string
		outputPath string
		noColor    bool
		roots      []string
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "modules <class-graph.json>",
		Short: "Describe the detected application modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))

			importer := classmodel.NewFileImporter(args[0])
			uc, err := app.NewModulesUseCaseBuilder().
				WithImporter(importer).
				WithAnnotationSource(importer).
				WithCatalog(domain.DefaultStereotypeCatalog()).
				WithFormatter(svc.NewModulesFormatter(color)).
				Build()
			if err != nil {
				return err
			}

			req := domain.ModulesRequest{
				RootPackages: roots,
				ConfigPath:   configPath,
				Strategy:     strategy,
				Format:       domain.OutputFormat(format),
				ModuleFilter: filter,
				OutputPath:   outputPath,
			}
			if outputPath == "" {
				req.OutputWriter = cmd.OutOrStdout()
			}

			return uc.Execute(context.Background(), req)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: text, json, yaml, dot (default from config)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Detection strategy override: direct-sub-packages, explicitly-annotated")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI highlighting")
	cmd.Flags().StringSliceVar(&roots, "root", nil, "Root package(s) to analyze (repeatable)")
	cmd.Flags().StringVar(&filter, "module", "", "Restrict output to a single module identifier")

	return cmd
}
