package analyzer

import (
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// DirectSubPackagesStrategy treats every direct child package of a root
// package as a candidate module base package (spec.md §4.7 step 2, §6).
type DirectSubPackagesStrategy struct{}

func (DirectSubPackagesStrategy) Name() domain.DetectionStrategy {
	return domain.DetectionStrategyDirectSubPackages
}

func (DirectSubPackagesStrategy) CandidateModules(root classmodel.PackageName, universe classmodel.Classes, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) []ModuleCandidate {
	pkg := classmodel.Of(universe, root, source)
	var out []ModuleCandidate
	for _, sub := range pkg.DirectSubPackages() {
		info := moduleInformationFor(sub, universe, source, catalog)
		out = append(out, ModuleCandidate{BasePackage: sub, Information: info})
		out = append(out, annotatedNestedModules(sub, universe, source, catalog)...)
	}
	return out
}

// ExplicitlyAnnotatedStrategy treats any descendant package whose descriptor
// carries the application-module marker as a candidate, at any depth
// (spec.md §4.7 step 2, §6).
type ExplicitlyAnnotatedStrategy struct{}

func (ExplicitlyAnnotatedStrategy) Name() domain.DetectionStrategy {
	return domain.DetectionStrategyExplicitlyAnnotated
}

func (ExplicitlyAnnotatedStrategy) CandidateModules(root classmodel.PackageName, universe classmodel.Classes, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) []ModuleCandidate {
	return annotatedNestedModules(root, universe, source, catalog)
}

// annotatedNestedModules finds every sub-package (of any depth) under base
// whose descriptor carries an application-module marker annotation, used by
// both strategies for nested module discovery (spec.md §4.7 step 2's
// "emit one source per annotated sub-package too").
func annotatedNestedModules(base classmodel.PackageName, universe classmodel.Classes, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) []ModuleCandidate {
	pkg := classmodel.Of(universe, base, source)
	var out []ModuleCandidate
	for _, fqn := range catalog.AnnotationsFor(domain.StereotypeApplicationModule) {
		for _, sub := range pkg.GetSubPackagesAnnotatedWith(fqn) {
			out = append(out, ModuleCandidate{BasePackage: sub, Information: moduleInformationFor(sub, universe, source, catalog)})
		}
	}
	return out
}

// moduleInformationFor reads a candidate base package's application-module
// marker (if present) to populate display name, declared dependencies, and
// openness (spec.md §3 ModuleInformation).
func moduleInformationFor(base classmodel.PackageName, universe classmodel.Classes, source classmodel.PackageAnnotationSource, catalog domain.StereotypeCatalog) ModuleInformation {
	pkg := classmodel.Of(universe, base, source)
	for _, fqn := range catalog.AnnotationsFor(domain.StereotypeApplicationModule) {
		ann, ok, err := pkg.FindAnnotation(fqn)
		if err != nil || !ok {
			continue
		}
		info := ModuleInformation{DisplayName: ann.Attributes["displayName"], Declared: true}
		info.IsOpen = ann.AttributeBool("open", false) || ann.Attributes["type"] == "OPEN"
		if deps := ann.AttributeList("allowedDependencies"); deps != nil {
			if len(deps) == 1 && deps[0] == string(domain.OpenToken) {
				info.IsOpen = true
			} else {
				info.DeclaredDependencies = deps
			}
		} else if _, hasKey := ann.Attributes["allowedDependencies"]; hasKey {
			info.DeclaredDependencies = []string{} // declared empty = deny-all
		}
		if info.IsOpen {
			info.DeclaredDependencies = nil
		}
		return info
	}
	// No application-module marker annotation found at all: Declared stays
	// false, distinct from an explicit open (`*`) declaration.
	return ModuleInformation{}
}
