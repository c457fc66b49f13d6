package analyzer

import (
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// ApplicationModuleDependencies is the result of ApplicationModule.GetDependencies (spec.md §4.5).
type ApplicationModuleDependencies struct {
	Edges []DependencyEdge
}

// TargetModules returns the distinct identifiers reached by Edges.
func (d ApplicationModuleDependencies) TargetModules(modules *ApplicationModules) []ApplicationModuleIdentifier {
	seen := map[ApplicationModuleIdentifier]struct{}{}
	var out []ApplicationModuleIdentifier
	for _, e := range d.Edges {
		target := modules.ModuleContaining(e.Target)
		if target == nil {
			continue
		}
		if _, ok := seen[target.Identifier()]; ok {
			continue
		}
		seen[target.Identifier()] = struct{}{}
		out = append(out, target.Identifier())
	}
	return out
}

// GetDependencies returns this module's dependencies on other modules at the
// requested depth (spec.md §4.5): NONE yields empty, IMMEDIATE yields only
// directly reached modules, ALL follows transitively with a seen-set guard.
func (m *ApplicationModule) GetDependencies(modules *ApplicationModules, depth DependencyDepth, kinds ...domain.DependencyKind) ApplicationModuleDependencies {
	if depth == DepthNone {
		return ApplicationModuleDependencies{}
	}

	kindSet := map[domain.DependencyKind]struct{}{}
	for _, k := range kinds {
		kindSet[k] = struct{}{}
	}
	matches := func(e DependencyEdge) bool {
		if len(kindSet) == 0 {
			return true
		}
		_, ok := kindSet[e.Kind]
		return ok
	}

	seenModules := map[ApplicationModuleIdentifier]struct{}{m.identifier: {}}
	var edges []DependencyEdge

	frontier := []*ApplicationModule{m}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		extractor := NewDependencyExtractor(cur.evidentTypeClassifier(), cur.catalog, cur.universe)
		var nextModules []*ApplicationModule
		for _, cl := range cur.Classes().All() {
			for _, e := range extractor.Extract(cl) {
				if !matches(e) {
					continue
				}
				target := modules.ModuleContaining(e.Target)
				if target == nil || target.Identifier() == m.identifier {
					continue
				}
				edges = append(edges, e)
				if _, seen := seenModules[target.Identifier()]; !seen {
					seenModules[target.Identifier()] = struct{}{}
					nextModules = append(nextModules, target)
				}
			}
		}
		if depth == DepthAll {
			frontier = append(frontier, nextModules...)
		}
	}

	return ApplicationModuleDependencies{Edges: edges}
}

// GetBootstrapDependencies restricts the dependency walk to bean-to-bean
// edges of kind USES_COMPONENT (spec.md §4.5).
func (m *ApplicationModule) GetBootstrapDependencies(modules *ApplicationModules, depth DependencyDepth) ApplicationModuleDependencies {
	return m.GetDependencies(modules, depth, domain.DependencyKindUsesComponent)
}

// DetectDependencies validates every outbound edge per §4.6 and accumulates violations.
func (m *ApplicationModule) DetectDependencies(modules *ApplicationModules) domain.Violations {
	validator := NewDependencyValidator(modules)
	var all []domain.Violation
	extractor := NewDependencyExtractor(m.evidentTypeClassifier(), m.catalog, m.universe)
	for _, cl := range m.Classes().All() {
		for _, e := range extractor.Extract(cl) {
			all = append(all, validator.ValidateEdge(m, e)...)
		}
	}
	return domain.NewViolations(all...)
}

// VerifyDependencies is equivalent to DetectDependencies but returns an error
// if the result is non-empty (spec.md §4.5).
func (m *ApplicationModule) VerifyDependencies(modules *ApplicationModules) error {
	return m.DetectDependencies(modules).ThrowIfPresent()
}

// GetEventsListenedTo returns, for every other module, the published events
// this module's listeners react to (spec.md §6).
func (m *ApplicationModule) GetEventsListenedTo(modules *ApplicationModules) []classmodel.ClassRef {
	listenedFQNs := map[string]struct{}{}
	for _, cl := range m.Classes().All() {
		et, err := m.GetArchitecturallyEvidentType(cl.FQN)
		if err != nil || !et.IsEventListener {
			continue
		}
		for _, ref := range et.ReferenceTypes {
			listenedFQNs[ref] = struct{}{}
		}
	}
	var out []classmodel.ClassRef
	for _, other := range modules.Modules() {
		if other.Identifier() == m.identifier {
			continue
		}
		for _, ev := range other.GetPublishedEvents() {
			if _, ok := listenedFQNs[ev.FQN]; ok {
				out = append(out, classmodel.ClassRef{Target: ev.FQN, Description: "event listened to"})
			}
		}
	}
	return out
}
