// Package service implements the business-logic services sitting between
// app/ use cases and internal/analyzer, grounded on the teacher's
// service/deps_service.go (request handling, layer-rule wiring) and
// service/deps_formatter.go (output rendering).
package service

import (
	"context"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/analyzer"
	"github.com/archlens/modulith/internal/classmodel"
	"github.com/archlens/modulith/internal/config"
)

// ModulithService is the core domain service: builds an ApplicationModules
// container from configuration and an importer, then runs verification or
// produces module descriptions.
type ModulithService struct {
	importer classmodel.ClassImporter
	source   classmodel.PackageAnnotationSource
	catalog  domain.StereotypeCatalog
}

// NewModulithService binds a service to an importer/source/catalog triple
// (spec.md §6's three externally-supplied collaborators).
func NewModulithService(importer classmodel.ClassImporter, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) *ModulithService {
	return &ModulithService{importer: importer, source: source, catalog: catalog}
}

// buildOptions translates loaded config + request overrides into analyzer.BuildOptions.
func (s *ModulithService) buildOptions(cfg *config.Config) (analyzer.BuildOptions, []string, error) {
	var strategy analyzer.DetectionStrategy
	switch domain.DetectionStrategy(cfg.Detection.Strategy) {
	case domain.DetectionStrategyExplicitlyAnnotated:
		strategy = analyzer.ExplicitlyAnnotatedStrategy{}
	case domain.DetectionStrategyDirectSubPackages, "":
		strategy = analyzer.DirectSubPackagesStrategy{}
	default:
		return analyzer.BuildOptions{}, nil, domain.NewConfigError("unknown detection strategy: "+cfg.Detection.Strategy, nil)
	}

	var rules []analyzer.Rule
	if len(cfg.Architecture.Rules) > 0 {
		rules = append(rules, NewLayerRuleEvaluator(cfg.Architecture.Layers, cfg.Architecture.Rules))
	}

	catalog := s.catalog
	if len(cfg.Architecture.StereotypeOverrides) > 0 {
		catalog = mergeCatalog(s.catalog, cfg.Architecture.StereotypeOverrides)
	}

	opts := analyzer.BuildOptions{
		Strategy:               strategy,
		Catalog:                catalog,
		Source:                 s.source,
		Rules:                  rules,
		UseFullyQualifiedNames: cfg.Detection.UseFullyQualifiedNames,
		SharedModuleIDs:        cfg.Detection.SharedModules,
		SystemName:             cfg.Detection.SystemName,
	}
	return opts, cfg.Detection.RootPackages, nil
}

func mergeCatalog(base domain.StereotypeCatalog, overrides map[string][]string) domain.StereotypeCatalog {
	merged := map[domain.Stereotype][]string{}
	for _, s := range []domain.Stereotype{
		domain.StereotypeComponent, domain.StereotypeService, domain.StereotypeController,
		domain.StereotypeRepository, domain.StereotypeConfiguration, domain.StereotypeConfigurationProperties,
		domain.StereotypeEventListener, domain.StereotypeTransactionalListener, domain.StereotypeAsync,
		domain.StereotypeBeanFactoryMethod, domain.StereotypeDomainEvent, domain.StereotypeDomainEventHandler,
		domain.StereotypeEntity, domain.StereotypeValidator, domain.StereotypeInjectAnnotation,
		domain.StereotypeNamedInterface, domain.StereotypeApplicationModule, domain.StereotypeApplicationListener,
	} {
		merged[s] = base.AnnotationsFor(s)
	}
	for key, fqns := range overrides {
		merged[domain.Stereotype(key)] = append(merged[domain.Stereotype(key)], fqns...)
	}
	return domain.NewMapStereotypeCatalog(merged)
}

// Verify builds the module container and runs detectViolations (spec.md §4.7).
func (s *ModulithService) Verify(ctx context.Context, cfg *config.Config) (*analyzer.ApplicationModules, domain.Violations, error) {
	opts, roots, err := s.buildOptions(cfg)
	if err != nil {
		return nil, domain.Violations{}, err
	}
	var modules *analyzer.ApplicationModules
	progress := NewImportProgress()
	err = progress.Track(len(roots), func() error {
		var importErr error
		modules, importErr = analyzer.Of(ctx, s.importer, roots, opts)
		return importErr
	})
	if err != nil {
		return nil, domain.Violations{}, err
	}
	return modules, modules.DetectViolations(), nil
}

// Describe builds the module container and returns a full domain.ModulesOverview
// for the `modules` use case and formatters.
func (s *ModulithService) Describe(ctx context.Context, cfg *config.Config) (*analyzer.ApplicationModules, domain.ModulesOverview, error) {
	opts, roots, err := s.buildOptions(cfg)
	if err != nil {
		return nil, domain.ModulesOverview{}, err
	}
	var modules *analyzer.ApplicationModules
	progress := NewImportProgress()
	err = progress.Track(len(roots), func() error {
		var importErr error
		modules, importErr = analyzer.Of(ctx, s.importer, roots, opts)
		return importErr
	})
	if err != nil {
		return nil, domain.ModulesOverview{}, err
	}
	return modules, BuildOverview(modules, cfg.Detection.SystemName), nil
}

// BuildOverview projects an ApplicationModules container into the
// rendering-ready domain.ModulesOverview (spec.md §6 "human-readable module description").
func BuildOverview(modules *analyzer.ApplicationModules, systemName string) domain.ModulesOverview {
	overview := domain.ModulesOverview{
		SystemName:    systemName,
		SharedModules: modules.SharedModules(),
	}
	for _, root := range modules.RootPackages() {
		overview.RootPackages = append(overview.RootPackages, root.String())
	}
	for _, id := range modules.OrderedIdentifiers() {
		mod, ok := modules.ModuleByIdentifier(id)
		if !ok {
			continue
		}
		overview.Modules = append(overview.Modules, summarizeModule(mod, modules))
	}
	return overview
}

func summarizeModule(mod *analyzer.ApplicationModule, modules *analyzer.ApplicationModules) domain.ModuleSummary {
	summary := domain.ModuleSummary{
		Identifier:   string(mod.Identifier()),
		DisplayName:  mod.Information().DisplayName,
		BasePackage:  mod.BasePackage().String(),
		Open:         mod.IsOpen(),
		InternalBeans: mod.SpringBeans(),
	}
	if p := mod.Parent(); p != nil {
		summary.ParentIdentifier = string(p.Identifier())
	}
	for _, excl := range mod.Exclusions() {
		summary.ExcludedPackages = append(summary.ExcludedPackages, excl.String())
	}
	for _, ni := range mod.NamedInterfaces().All() {
		names := make([]string, 0, ni.Classes.Len())
		for _, c := range ni.Classes.All() {
			names = append(names, c.FQN)
		}
		summary.NamedInterfaces = append(summary.NamedInterfaces, domain.NamedInterfaceSummary{Name: ni.Name, ClassNames: names})
	}
	for _, target := range mod.GetDependencies(modules, analyzer.DepthImmediate).TargetModules(modules) {
		summary.DirectDependencies = append(summary.DirectDependencies, string(target))
	}
	for _, target := range mod.GetBootstrapDependencies(modules, analyzer.DepthImmediate).TargetModules(modules) {
		summary.BootstrapDependencies = append(summary.BootstrapDependencies, string(target))
	}
	for _, bean := range mod.SpringBeans() {
		if mod.NamedInterfaces().ContainsClass(bean) || unnamedContains(mod, bean) {
			summary.ExposedBeans = append(summary.ExposedBeans, bean)
		}
	}
	return summary
}

func unnamedContains(mod *analyzer.ApplicationModule, fqn string) bool {
	ni, ok := mod.NamedInterfaces().Get(domain.UnnamedInterfaceName)
	return ok && ni.Classes.Contains(fqn)
}

// edgesFor collects EdgeSummary values for DOT/CSV exporters (SUPPLEMENTED
// FEATURES 1 and 5), grounded on deps_service.go's ToDOT()/CSV rendering.
func edgesFor(modules *analyzer.ApplicationModules) []domain.EdgeSummary {
	var edges []domain.EdgeSummary
	for _, mod := range modules.Modules() {
		deps := mod.GetDependencies(modules, analyzer.DepthImmediate)
		for _, e := range deps.Edges {
			target := modules.ModuleContaining(e.Target)
			targetID := ""
			if target != nil {
				targetID = string(target.Identifier())
			}
			edges = append(edges, domain.EdgeSummary{
				SourceModule: string(mod.Identifier()),
				TargetModule: targetID,
				SourceType:   e.Source,
				TargetType:   e.Target,
				Description:  e.Description,
				Kind:         e.Kind,
			})
		}
	}
	return edges
}
