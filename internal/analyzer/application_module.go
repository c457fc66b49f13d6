package analyzer

import (
	"sort"
	"sync"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// ApplicationModuleIdentifier is a non-empty, `::`-free string identifying a
// module (spec.md §3).
type ApplicationModuleIdentifier string

// DependencyDepth selects how far ApplicationModule.GetDependencies follows
// the dependency graph (spec.md §4.5).
type DependencyDepth int

const (
	DepthNone DependencyDepth = iota
	DepthImmediate
	DepthAll
)

// ModuleInformation carries a module's declared metadata (spec.md §3).
// Declared distinguishes "an application-module marker annotation was found
// on this package" from "no marker at all" — the latter must not be
// conflated with an explicit open (`*`) declaration, since the two take
// different paths through DependencyValidator.ValidateEdge.
type ModuleInformation struct {
	DisplayName          string
	DeclaredDependencies []string // raw `target[::interface]` tokens, or nil when IsOpen, undeclared, or the marker has no allowedDependencies attribute
	IsOpen               bool
	Declared             bool
}

// ApplicationModule is a base package plus exclusions, with memoized views
// (spec.md §3/§4.5). All derived collections are computed at most once per
// instance via sync.Once, per spec.md §9's "compute-once slots" redesign note.
type ApplicationModule struct {
	identifier  ApplicationModuleIdentifier
	basePackage classmodel.PackageName
	exclusions  []classmodel.PackageName
	information ModuleInformation

	universe classmodel.Classes // full application class universe
	catalog  domain.StereotypeCatalog
	source   classmodel.PackageAnnotationSource

	parent *ApplicationModule

	classesOnce sync.Once
	classes     classmodel.Classes

	namedInterfacesOnce sync.Once
	namedInterfaces     NamedInterfaces

	allowedDepsOnce sync.Once
	allowedDeps     AllowedDependencies
	allowedDepsErr  error

	evidentTypesOnce sync.Once
	evidentTypes     map[string]EvidentType

	beansOnce sync.Once
	beans     []string
}

// NewApplicationModule constructs a module. Its declared-dependency tokens
// are resolved later, once all modules are known, by
// resolveAllowedDependencies.
func NewApplicationModule(
	id ApplicationModuleIdentifier,
	basePackage classmodel.PackageName,
	exclusions []classmodel.PackageName,
	info ModuleInformation,
	universe classmodel.Classes,
	catalog domain.StereotypeCatalog,
	source classmodel.PackageAnnotationSource,
) *ApplicationModule {
	return &ApplicationModule{
		identifier:  id,
		basePackage: basePackage,
		exclusions:  exclusions,
		information: info,
		universe:    universe,
		catalog:     catalog,
		source:      source,
	}
}

func (m *ApplicationModule) Identifier() ApplicationModuleIdentifier { return m.identifier }
func (m *ApplicationModule) BasePackage() classmodel.PackageName     { return m.basePackage }
func (m *ApplicationModule) Exclusions() []classmodel.PackageName {
	return append([]classmodel.PackageName(nil), m.exclusions...)
}
func (m *ApplicationModule) IsOpen() bool                    { return m.information.IsOpen }
func (m *ApplicationModule) Information() ModuleInformation  { return m.information }
func (m *ApplicationModule) Parent() *ApplicationModule      { return m.parent }
func (m *ApplicationModule) setParent(p *ApplicationModule)  { m.parent = p }

// Classes returns the module's residual class set: everything under
// basePackage minus anything under exclusions (spec.md §3).
func (m *ApplicationModule) Classes() classmodel.Classes {
	m.classesOnce.Do(func() {
		m.classes = m.universe.ThatResideUnder(m.basePackage).Without(m.exclusions)
	})
	return m.classes
}

// Contains reports whether class is in the module's residual class set (spec.md §4.5).
func (m *ApplicationModule) Contains(fqn string) bool {
	return m.Classes().Contains(fqn)
}

// CouldContain reports whether C belongs to this module's package tree:
// contains(C), or C resides in basePackage or below and not under any
// exclusion (spec.md §4.5, §8 invariant).
func (m *ApplicationModule) CouldContain(fqn string) bool {
	if m.Contains(fqn) {
		return true
	}
	cl, ok := m.universe.Get(fqn)
	if !ok {
		return false
	}
	pkg := cl.PackageName()
	under := pkg.Equal(m.basePackage) || pkg.IsSubPackageOf(m.basePackage)
	if !under {
		return false
	}
	for _, excl := range m.exclusions {
		if pkg.Equal(excl) || pkg.IsSubPackageOf(excl) {
			return false
		}
	}
	return true
}

// NamedInterfaces returns the module's named interfaces, resolved once (spec.md §4.4).
func (m *ApplicationModule) NamedInterfaces() NamedInterfaces {
	m.namedInterfacesOnce.Do(func() {
		resolver := NewNamedInterfaceResolver(m.catalog, m.source)
		m.namedInterfaces = resolver.Resolve(m.basePackage, m.Classes(), m.IsOpen())
	})
	return m.namedInterfaces
}

// evidentTypeClassifier builds a classifier bound to this module's known beans.
func (m *ApplicationModule) evidentTypeClassifier() *EvidentTypeClassifier {
	return NewEvidentTypeClassifier(m.catalog, m.SpringBeans())
}

// GetArchitecturallyEvidentType returns the memoized classification of fqn,
// failing if the class is absent from the module (spec.md §4.5).
func (m *ApplicationModule) GetArchitecturallyEvidentType(fqn string) (EvidentType, error) {
	m.evidentTypesOnce.Do(func() {
		classifier := m.evidentTypeClassifier()
		m.evidentTypes = make(map[string]EvidentType, m.Classes().Len())
		for _, cl := range m.Classes().All() {
			m.evidentTypes[cl.FQN] = classifier.Classify(cl)
		}
	})
	et, ok := m.evidentTypes[fqn]
	if !ok {
		return EvidentType{}, domain.NewInvalidInputError("class "+fqn+" is not in module "+string(m.identifier), nil)
	}
	return et, nil
}

// SpringBeans returns the FQNs of classes recognized as beans: any class
// carrying a component-family stereotype annotation.
func (m *ApplicationModule) SpringBeans() []string {
	m.beansOnce.Do(func() {
		var beans []string
		for _, fqn := range m.catalog.AnnotationsFor(domain.StereotypeComponent) {
			beans = append(beans, m.classesAnnotatedWith(fqn)...)
		}
		for _, fqn := range m.catalog.AnnotationsFor(domain.StereotypeService) {
			beans = append(beans, m.classesAnnotatedWith(fqn)...)
		}
		for _, fqn := range m.catalog.AnnotationsFor(domain.StereotypeController) {
			beans = append(beans, m.classesAnnotatedWith(fqn)...)
		}
		for _, fqn := range m.catalog.AnnotationsFor(domain.StereotypeRepository) {
			beans = append(beans, m.classesAnnotatedWith(fqn)...)
		}
		sort.Strings(beans)
		m.beans = dedupeStrings(beans)
	})
	return append([]string(nil), m.beans...)
}

func (m *ApplicationModule) classesAnnotatedWith(fqn string) []string {
	var out []string
	for _, c := range m.Classes().All() {
		if c.HasAnnotation(fqn) {
			out = append(out, c.FQN)
		}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := map[string]struct{}{}
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// GetAggregateRoots returns aggregate-root-classified types plus their
// in-module super-classes (spec.md §4.5).
func (m *ApplicationModule) GetAggregateRoots() []classmodel.Class {
	var roots []classmodel.Class
	for _, cl := range m.Classes().All() {
		et, err := m.GetArchitecturallyEvidentType(cl.FQN)
		if err != nil || !et.IsAggregateRoot {
			continue
		}
		roots = append(roots, cl)
		for _, super := range cl.SuperTypes {
			if superCl, ok := m.Classes().Get(super); ok {
				roots = append(roots, superCl)
			}
		}
	}
	return roots
}

// GetValueTypes returns every class classified as a value object.
func (m *ApplicationModule) GetValueTypes() []classmodel.Class {
	var out []classmodel.Class
	for _, cl := range m.Classes().All() {
		if et, err := m.GetArchitecturallyEvidentType(cl.FQN); err == nil && et.IsValueObject {
			out = append(out, cl)
		}
	}
	return out
}

// GetPublishedEvents returns classes implementing/annotated as domain events (spec.md §4.5).
func (m *ApplicationModule) GetPublishedEvents() []classmodel.Class {
	var out []classmodel.Class
	domainEventFQNs := m.catalog.AnnotationsFor(domain.StereotypeDomainEvent)
	for _, cl := range m.Classes().All() {
		if cl.HasAnyOf(domainEventFQNs) {
			out = append(out, cl)
		}
	}
	return out
}

// AllowedDependencies returns this module's parsed declared-dependency tokens
// (spec.md §4.6). They are resolved once by resolveAllowedDependencies while
// ApplicationModules is built, because parsing must see sibling modules'
// NamedInterfaces.
func (m *ApplicationModule) AllowedDependencies() AllowedDependencies {
	return m.allowedDeps
}

// resolveAllowedDependencies is invoked once by ApplicationModules during
// construction, after every module's identifier and named interfaces are known.
func (m *ApplicationModule) resolveAllowedDependencies(allInterfaces map[string]NamedInterfaces) error {
	var resultErr error
	m.allowedDepsOnce.Do(func() {
		if m.information.IsOpen {
			m.allowedDeps = OpenAllowedDependencies()
			return
		}
		if !m.information.Declared {
			m.allowedDeps = UndeclaredAllowedDependencies()
			return
		}
		items := make([]AllowedDependency, 0, len(m.information.DeclaredDependencies))
		for _, token := range m.information.DeclaredDependencies {
			dep, err := ParseAllowedDependency(token, allInterfaces)
			if err != nil {
				resultErr = err
				m.allowedDepsErr = err
				return
			}
			items = append(items, dep)
		}
		m.allowedDeps = ClosedAllowedDependencies(items)
	})
	if resultErr != nil {
		return resultErr
	}
	return m.allowedDepsErr
}
