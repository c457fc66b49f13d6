package analyzer

import (
	"context"
	"sort"
	"sync"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// DetectionStrategy recognizes candidate module base packages under a root
// package (spec.md §6 "Detection-strategy selector").
type DetectionStrategy interface {
	// CandidateModules returns the base packages of every module detected
	// under root, given the full class universe and an annotation source.
	CandidateModules(root classmodel.PackageName, universe classmodel.Classes, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) []ModuleCandidate
	Name() domain.DetectionStrategy
}

// ModuleCandidate is a detected module base package plus whatever metadata
// its marker annotation carried.
type ModuleCandidate struct {
	BasePackage classmodel.PackageName
	Information ModuleInformation
	Identifier  ApplicationModuleIdentifier // used as-is when non-empty; the built-in strategies leave it empty, so it is derived from BasePackage
}

// Rule is an externally-supplied architecture evaluator (spec.md §6
// "External rules"): given the full class universe, returns violation messages.
type Rule interface {
	Evaluate(universe classmodel.Classes) []string
}

// ApplicationModulesMetadata carries the configuration-sourced values spec.md
// §6's "Configuration source" external collaborator exposes.
type ApplicationModulesMetadata struct {
	SystemName           string
	RootPackages         []string
	UseFullyQualifiedNames bool
	SharedModuleIDs      []string
}

// ApplicationModules is the root container (spec.md §3/§4.7): modules keyed
// by identifier, root packages, root modules, shared modules, and a
// deterministic ordering.
type ApplicationModules struct {
	metadata   ApplicationModulesMetadata
	modules    map[ApplicationModuleIdentifier]*ApplicationModule
	rootPackages []classmodel.PackageName
	rootModuleIDs []ApplicationModuleIdentifier
	sharedModuleIDs []ApplicationModuleIdentifier
	orderedIdentifiers []ApplicationModuleIdentifier

	classToModule map[string]ApplicationModuleIdentifier

	universe classmodel.Classes
	rules    []Rule

	verifiedMu sync.Mutex
	verified   bool
}

// moduleCache is the process-wide, read-mostly cache of ApplicationModules
// (spec.md §5), keyed by root packages + strategy + FQ-names flag.
var moduleCache sync.Map // map[cacheKey]*ApplicationModules

type cacheKey struct {
	roots    string
	strategy domain.DetectionStrategy
	fqNames  bool
}

// BuildOptions configures ApplicationModules construction (spec.md §6 "options").
type BuildOptions struct {
	Strategy           DetectionStrategy
	Catalog            domain.StereotypeCatalog
	Source             classmodel.PackageAnnotationSource
	Rules              []Rule
	UseFullyQualifiedNames bool
	SharedModuleIDs    []string
	SystemName         string
}

// Of constructs (or returns the cached) ApplicationModules for the given
// importer, root packages, and options (spec.md §6 `ApplicationModules::of`).
func Of(ctx context.Context, importer classmodel.ClassImporter, rootPackages []string, opts BuildOptions) (*ApplicationModules, error) {
	key := cacheKey{roots: joinRoots(rootPackages), strategy: opts.Strategy.Name(), fqNames: opts.UseFullyQualifiedNames}
	if cached, ok := moduleCache.Load(key); ok {
		return cached.(*ApplicationModules), nil
	}

	universe, err := importer.Import(ctx, rootPackages)
	if err != nil {
		return nil, err
	}
	if universe.Len() == 0 {
		return nil, domain.NewEmptyClassUniverseError(rootPackages)
	}

	built, err := build(universe, rootPackages, opts)
	if err != nil {
		return nil, err
	}
	actual, _ := moduleCache.LoadOrStore(key, built)
	return actual.(*ApplicationModules), nil
}

func joinRoots(roots []string) string {
	sorted := append([]string(nil), roots...)
	sort.Strings(sorted)
	out := ""
	for i, r := range sorted {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out
}

func build(universe classmodel.Classes, rootPackages []string, opts BuildOptions) (*ApplicationModules, error) {
	roots := make([]classmodel.PackageName, len(rootPackages))
	for i, r := range rootPackages {
		roots[i] = classmodel.NewPackageName(r)
	}

	var candidates []ModuleCandidate
	for _, root := range roots {
		candidates = append(candidates, opts.Strategy.CandidateModules(root, universe, opts.Source, opts.Catalog)...)
	}

	exclusionsByBase := computeExclusions(candidates)

	am := &ApplicationModules{
		metadata: ApplicationModulesMetadata{
			SystemName:             opts.SystemName,
			RootPackages:           rootPackages,
			UseFullyQualifiedNames: opts.UseFullyQualifiedNames,
			SharedModuleIDs:        append([]string(nil), opts.SharedModuleIDs...),
		},
		modules:       map[ApplicationModuleIdentifier]*ApplicationModule{},
		rootPackages:  roots,
		classToModule: map[string]ApplicationModuleIdentifier{},
		universe:      universe,
		rules:         opts.Rules,
	}

	for _, c := range candidates {
		id := c.Identifier
		if id == "" {
			id = deriveIdentifier(c.BasePackage, roots, opts.UseFullyQualifiedNames)
		}
		mod := NewApplicationModule(id, c.BasePackage, exclusionsByBase[c.BasePackage.String()], c.Information, universe, opts.Catalog, opts.Source)
		am.modules[id] = mod
	}

	for _, mod := range am.modules {
		for _, cl := range mod.Classes().All() {
			am.classToModule[cl.FQN] = mod.identifier
		}
	}

	assignParents(am.modules)

	allInterfaces := map[string]NamedInterfaces{}
	for id, mod := range am.modules {
		allInterfaces[string(id)] = mod.NamedInterfaces()
	}
	for _, mod := range am.modules {
		if err := mod.resolveAllowedDependencies(allInterfaces); err != nil {
			return nil, err
		}
	}

	for _, id := range opts.SharedModuleIDs {
		am.sharedModuleIDs = append(am.sharedModuleIDs, ApplicationModuleIdentifier(id))
	}
	for id, mod := range am.modules {
		if mod.Parent() == nil {
			am.rootModuleIDs = append(am.rootModuleIDs, id)
		}
	}
	sort.Slice(am.rootModuleIDs, func(i, j int) bool { return am.rootModuleIDs[i] < am.rootModuleIDs[j] })

	am.orderedIdentifiers = am.computeOrder()

	return am, nil
}

// computeExclusions implements spec.md §4.7 step 3: each module's exclusions
// are every *other* module base package that is a strict sub-package of it.
func computeExclusions(candidates []ModuleCandidate) map[string][]classmodel.PackageName {
	out := map[string][]classmodel.PackageName{}
	for _, c := range candidates {
		var excl []classmodel.PackageName
		for _, other := range candidates {
			if other.BasePackage.String() == c.BasePackage.String() {
				continue
			}
			if other.BasePackage.IsSubPackageOf(c.BasePackage) {
				excl = append(excl, other.BasePackage)
			}
		}
		out[c.BasePackage.String()] = excl
	}
	return out
}

// deriveIdentifier implements spec.md §3: the trailing name under the first
// root package (in configured order) that contains base, or the FQ package
// name if useFQNames.
func deriveIdentifier(base classmodel.PackageName, roots []classmodel.PackageName, useFQNames bool) ApplicationModuleIdentifier {
	if useFQNames {
		return ApplicationModuleIdentifier(base.String())
	}
	for _, root := range roots {
		if base.Equal(root) {
			return ApplicationModuleIdentifier(base.LocalName())
		}
		if base.IsSubPackageOf(root) {
			return ApplicationModuleIdentifier(base.TrailingName(root))
		}
	}
	return ApplicationModuleIdentifier(base.String())
}

// assignParents picks, for each module, the nearest strict ancestor among
// the other detected modules (the one with the longest base package), used
// by the parent/child/sibling allowed-dependency fallback (spec.md §4.6).
func assignParents(modules map[ApplicationModuleIdentifier]*ApplicationModule) {
	for _, mod := range modules {
		var best *ApplicationModule
		for _, candidate := range modules {
			if candidate.identifier == mod.identifier {
				continue
			}
			if !mod.basePackage.IsSubPackageOf(candidate.basePackage) {
				continue
			}
			if best == nil || len(candidate.basePackage.Segments()) > len(best.basePackage.Segments()) {
				best = candidate
			}
		}
		mod.setParent(best)
	}
}

// Modules returns every module, identifier-sorted.
func (am *ApplicationModules) Modules() []*ApplicationModule {
	ids := make([]ApplicationModuleIdentifier, 0, len(am.modules))
	for id := range am.modules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*ApplicationModule, len(ids))
	for i, id := range ids {
		out[i] = am.modules[id]
	}
	return out
}

// ModuleByIdentifier looks up a module by identifier.
func (am *ApplicationModules) ModuleByIdentifier(id ApplicationModuleIdentifier) (*ApplicationModule, bool) {
	m, ok := am.modules[id]
	return m, ok
}

// ModuleContaining returns the module owning class fqn, or nil.
func (am *ApplicationModules) ModuleContaining(fqn string) *ApplicationModule {
	id, ok := am.classToModule[fqn]
	if !ok {
		return nil
	}
	return am.modules[id]
}

// RootPackages returns the configured root packages.
func (am *ApplicationModules) RootPackages() []classmodel.PackageName {
	return append([]classmodel.PackageName(nil), am.rootPackages...)
}

// RootModules returns the top-level (no-parent) modules, identifier-sorted.
func (am *ApplicationModules) RootModules() []*ApplicationModule {
	out := make([]*ApplicationModule, len(am.rootModuleIDs))
	for i, id := range am.rootModuleIDs {
		out[i] = am.modules[id]
	}
	return out
}

// SharedModules returns the configured shared-module identifiers as strings.
func (am *ApplicationModules) SharedModules() []string {
	out := make([]string, len(am.sharedModuleIDs))
	for i, id := range am.sharedModuleIDs {
		out[i] = string(id)
	}
	return out
}

// OrderedIdentifiers returns the deterministic module sequence (spec.md §3/§4.7).
func (am *ApplicationModules) OrderedIdentifiers() []ApplicationModuleIdentifier {
	return append([]ApplicationModuleIdentifier(nil), am.orderedIdentifiers...)
}

func (am *ApplicationModules) computeOrder() []ApplicationModuleIdentifier {
	graph := NewSliceGraph()
	directDeps := map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier{}
	var all []ApplicationModuleIdentifier

	for id, mod := range am.modules {
		all = append(all, id)
		graph.AddNode(id)
		if mod.IsOpen() {
			continue
		}
		deps := mod.GetDependencies(am, DepthImmediate).TargetModules(am)
		directDeps[id] = deps
		for _, dep := range deps {
			if target, ok := am.modules[dep]; ok && !target.IsOpen() {
				graph.AddEdge(id, dep)
			}
		}
	}

	if NewCycleDetector(graph).HasCycles() {
		fallback := append([]ApplicationModuleIdentifier(nil), all...)
		sort.Slice(fallback, func(i, j int) bool { return fallback[i] < fallback[j] })
		return fallback
	}

	return NewTopologicalOrderer(all, directDeps).Order()
}

// Cycles runs the slice-level cycle check over the whole container
// (spec.md §4.7 step 5).
func (am *ApplicationModules) Cycles() [][]ApplicationModuleIdentifier {
	graph := NewSliceGraph()
	for id, mod := range am.modules {
		graph.AddNode(id)
		if mod.IsOpen() {
			continue
		}
		for _, dep := range mod.GetDependencies(am, DepthImmediate).TargetModules(am) {
			if target, ok := am.modules[dep]; ok && !target.IsOpen() {
				graph.AddEdge(id, dep)
			}
		}
	}
	return NewCycleDetector(graph).Cycles()
}
