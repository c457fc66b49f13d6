package app

import (
	"context"
	"fmt"
	"io"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
	"github.com/archlens/modulith/internal/config"
	svc "github.com/archlens/modulith/service"
)

// ModulesUseCase orchestrates `modulith modules`: describe the detected
// module structure without running verification.
type ModulesUseCase struct {
	importer  classmodel.ClassImporter
	source    classmodel.PackageAnnotationSource
	catalog   domain.StereotypeCatalog
	formatter *svc.ModulesFormatter
	output    domain.ReportWriter
}

// NewModulesUseCase builds a use case from its required collaborators.
func NewModulesUseCase(importer classmodel.ClassImporter, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog, formatter *svc.ModulesFormatter) *ModulesUseCase {
	return &ModulesUseCase{importer: importer, source: source, catalog: catalog, formatter: formatter, output: svc.NewFileOutputWriter(nil)}
}

// Execute runs the modules use case end to end.
func (uc *ModulesUseCase) Execute(ctx context.Context, req domain.ModulesRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	cfg, err := config.LoadConfig(req.ConfigPath)
	if err != nil {
		return err
	}
	if req.Strategy != "" {
		cfg.Detection.Strategy = req.Strategy
	}
	if len(req.RootPackages) > 0 {
		cfg.Detection.RootPackages = req.RootPackages
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	service := svc.NewModulithService(uc.importer, uc.source, uc.catalog)
	modules, overview, err := service.Describe(ctx, cfg)
	if err != nil {
		return err
	}

	if req.ModuleFilter != "" {
		overview = filterOverview(overview, req.ModuleFilter)
	}

	format := req.Format
	if format == "" {
		format = domain.OutputFormat(cfg.Output.Format)
	}

	writeFunc := func(w io.Writer) error {
		if format == domain.OutputFormatDOT {
			return svc.NewDotFormatter().Format(w, modules)
		}
		return uc.formatter.Format(w, overview, format)
	}

	if err := uc.output.Write(req.OutputWriter, req.OutputPath, format, writeFunc); err != nil {
		return domain.NewOutputError("failed to write modules report", err)
	}
	return nil
}

func filterOverview(overview domain.ModulesOverview, identifier string) domain.ModulesOverview {
	filtered := overview
	filtered.Modules = nil
	for _, m := range overview.Modules {
		if m.Identifier == identifier {
			filtered.Modules = append(filtered.Modules, m)
		}
	}
	return filtered
}

// ModulesUseCaseBuilder is a fluent builder for ModulesUseCase.
type ModulesUseCaseBuilder struct {
	importer  classmodel.ClassImporter
	source    classmodel.PackageAnnotationSource
	catalog   domain.StereotypeCatalog
	formatter *svc.ModulesFormatter
	output    domain.ReportWriter
}

func NewModulesUseCaseBuilder() *ModulesUseCaseBuilder { return &ModulesUseCaseBuilder{} }

func (b *ModulesUseCaseBuilder) WithImporter(i classmodel.ClassImporter) *ModulesUseCaseBuilder {
	b.importer = i
	return b
}

func (b *ModulesUseCaseBuilder) WithAnnotationSource(s classmodel.PackageAnnotationSource) *ModulesUseCaseBuilder {
	b.source = s
	return b
}

func (b *ModulesUseCaseBuilder) WithCatalog(c domain.StereotypeCatalog) *ModulesUseCaseBuilder {
	b.catalog = c
	return b
}

func (b *ModulesUseCaseBuilder) WithFormatter(f *svc.ModulesFormatter) *ModulesUseCaseBuilder {
	b.formatter = f
	return b
}

func (b *ModulesUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *ModulesUseCaseBuilder {
	b.output = w
	return b
}

func (b *ModulesUseCaseBuilder) Build() (*ModulesUseCase, error) {
	if b.importer == nil || b.source == nil || b.catalog == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	if b.formatter == nil {
		b.formatter = svc.NewModulesFormatter(true)
	}
	uc := &ModulesUseCase{importer: b.importer, source: b.source, catalog: b.catalog, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
