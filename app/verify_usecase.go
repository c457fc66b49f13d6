// Package app contains the use cases orchestrating internal/config,
// internal/analyzer, and service/, grounded on the teacher's app/deps_usecase.go.
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

// VerifyUseCase orchestrates `modulith verify`: load configuration, build the
// module container, detect violations, and render the report.
type VerifyUseCase struct {
	importer  classmodel.ClassImporter
	source    classmodel.PackageAnnotationSource
	catalog   domain.StereotypeCatalog
	formatter *svc.VerifyFormatter
	output    domain.ReportWriter
}

// NewVerifyUseCase builds a use case from its required collaborators.
func NewVerifyUseCase(importer classmodel.ClassImporter, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog, formatter *svc.VerifyFormatter) *VerifyUseCase {
	return &VerifyUseCase{importer: importer, source: source, catalog: catalog, formatter: formatter, output: svc.NewFileOutputWriter(nil)}
}

// Execute runs the verify use case end to end.
func (uc *VerifyUseCase) Execute(ctx context.Context, req domain.VerifyRequest) error {
	if err := uc.validate(req); err != nil {
		return domain.NewInvalidInputError("invalid verify request", err)
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
	modules, violations, err := service.Verify(ctx, cfg)
	if err != nil {
		return err
	}

	format := req.Format
	if format == "" {
		format = domain.OutputFormat(cfg.Output.Format)
	}

	writeFunc := func(w io.Writer) error {
		switch format {
		case domain.OutputFormatDOT:
			return svc.NewDotFormatter().Format(w, modules)
		case domain.OutputFormatCSV:
			return svc.NewCsvFormatter().Format(w, modules, violations)
		default:
			return uc.formatter.Format(w, len(modules.Modules()), violations, format)
		}
	}

	if err := uc.output.Write(req.OutputWriter, req.OutputPath, format, writeFunc); err != nil {
		return domain.NewOutputError("failed to write verify report", err)
	}

	return violations.ThrowIfPresent()
}

func (uc *VerifyUseCase) validate(req domain.VerifyRequest) error {
	if len(req.RootPackages) == 0 && req.ConfigPath == "" {
		return fmt.Errorf("at least one root package or a config path is required")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// VerifyUseCaseBuilder is a fluent builder for VerifyUseCase, grounded on
// app/deps_usecase.go's DepsUseCaseBuilder.
type VerifyUseCaseBuilder struct {
	importer  classmodel.ClassImporter
	source    classmodel.PackageAnnotationSource
	catalog   domain.StereotypeCatalog
	formatter *svc.VerifyFormatter
	output    domain.ReportWriter
}

func NewVerifyUseCaseBuilder() *VerifyUseCaseBuilder { return &VerifyUseCaseBuilder{} }

func (b *VerifyUseCaseBuilder) WithImporter(i classmodel.ClassImporter) *VerifyUseCaseBuilder {
	b.importer = i
	return b
}

func (b *VerifyUseCaseBuilder) WithAnnotationSource(s classmodel.PackageAnnotationSource) *VerifyUseCaseBuilder {
	b.source = s
	return b
}

func (b *VerifyUseCaseBuilder) WithCatalog(c domain.StereotypeCatalog) *VerifyUseCaseBuilder {
	b.catalog = c
	return b
}

func (b *VerifyUseCaseBuilder) WithFormatter(f *svc.VerifyFormatter) *VerifyUseCaseBuilder {
	b.formatter = f
	return b
}

func (b *VerifyUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *VerifyUseCaseBuilder {
	b.output = w
	return b
}

func (b *VerifyUseCaseBuilder) Build() (*VerifyUseCase, error) {
	if b.importer == nil || b.source == nil || b.catalog == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	if b.formatter == nil {
		b.formatter = svc.NewVerifyFormatter(true)
	}
	uc := &VerifyUseCase{importer: b.importer, source: b.source, catalog: b.catalog, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
