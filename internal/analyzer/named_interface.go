package analyzer

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// NamedInterface is a labelled subset of a module's public classes (spec.md §3).
type NamedInterface struct {
	Name    string
	Classes classmodel.Classes
}

// merge unions two same-named interfaces' classes (spec.md §3/§4.4).
func (n NamedInterface) merge(other NamedInterface) NamedInterface {
	all := append(n.Classes.All(), other.Classes.All()...)
	return NamedInterface{Name: n.Name, Classes: classmodel.NewClasses(all)}
}

// NamedInterfaces is the ordered-by-name collection that always contains
// exactly one UNNAMED interface (spec.md §3).
type NamedInterfaces struct {
	byName map[string]NamedInterface
	order  []string
}

func newNamedInterfaces(items map[string]NamedInterface) NamedInterfaces {
	order := make([]string, 0, len(items))
	for name := range items {
		order = append(order, name)
	}
	sortStableNames(order)
	return NamedInterfaces{byName: items, order: order}
}

// sortStableNames puts UNNAMED first, the rest alphabetically — a
// deterministic, documented order (spec.md §5 "all public iteration orders...
// are deterministic").
func sortStableNames(names []string) {
	sort.Slice(names, func(i, j int) bool { return less(names[i], names[j]) })
}

func less(a, b string) bool {
	if a == domain.UnnamedInterfaceName {
		return true
	}
	if b == domain.UnnamedInterfaceName {
		return false
	}
	return a < b
}

// All returns the interfaces in deterministic order, UNNAMED first.
func (n NamedInterfaces) All() []NamedInterface {
	out := make([]NamedInterface, len(n.order))
	for i, name := range n.order {
		out[i] = n.byName[name]
	}
	return out
}

// Get looks up an interface by name.
func (n NamedInterfaces) Get(name string) (NamedInterface, bool) {
	ni, ok := n.byName[name]
	return ni, ok
}

// Unnamed returns the always-present UNNAMED interface.
func (n NamedInterfaces) Unnamed() NamedInterface {
	return n.byName[domain.UnnamedInterfaceName]
}

// ContainsClass reports whether fqn belongs to any explicit (non-UNNAMED) interface.
func (n NamedInterfaces) ContainsClass(fqn string) bool {
	for name, ni := range n.byName {
		if name == domain.UnnamedInterfaceName {
			continue
		}
		if ni.Classes.Contains(fqn) {
			return true
		}
	}
	return false
}

// InterfacesContaining returns the names of every explicit interface containing fqn.
func (n NamedInterfaces) InterfacesContaining(fqn string) []string {
	var out []string
	for _, name := range n.order {
		if name == domain.UnnamedInterfaceName {
			continue
		}
		if n.byName[name].Classes.Contains(fqn) {
			out = append(out, name)
		}
	}
	return out
}

// NamedInterfaceResolver implements spec.md §4.4: computes a module's
// explicit named interfaces from package- and type-annotated sources, merges
// same-named interfaces, and derives the UNNAMED interface per open/closed
// semantics. Grounded on reexport_resolver.go's merge/propagate shape.
type NamedInterfaceResolver struct {
	catalog domain.StereotypeCatalog
	source  classmodel.PackageAnnotationSource
}

// NewNamedInterfaceResolver builds a resolver bound to catalog and source.
func NewNamedInterfaceResolver(catalog domain.StereotypeCatalog, source classmodel.PackageAnnotationSource) *NamedInterfaceResolver {
	return &NamedInterfaceResolver{catalog: catalog, source: source}
}

// Resolve computes the NamedInterfaces of a module whose residual classes are
// moduleClasses, rooted at basePackage, open as given.
func (r *NamedInterfaceResolver) Resolve(basePackage classmodel.PackageName, moduleClasses classmodel.Classes, open bool) NamedInterfaces {
	explicit := map[string]NamedInterface{}
	addOrMerge := func(ni NamedInterface) {
		if existing, ok := explicit[ni.Name]; ok {
			explicit[ni.Name] = existing.merge(ni)
		} else {
			explicit[ni.Name] = ni
		}
	}

	namedInterfaceFQNs := r.catalog.AnnotationsFor(domain.StereotypeNamedInterface)

	// Package-annotated sources (spec.md §4.4 bullet 1).
	pkg := classmodel.Of(moduleClasses, basePackage, r.source)
	for _, sub := range pkg.SubPackages() {
		for _, fqn := range namedInterfaceFQNs {
			ann, ok := r.source.PackageAnnotation(sub.String(), fqn)
			if !ok {
				continue
			}
			names := ann.AttributeList("name")
			if len(names) == 0 {
				names = []string{sub.LocalName()}
			}
			subPkg := classmodel.Of(moduleClasses, sub, r.source)
			exposed := subPkg.ExposedClasses()
			for _, name := range names {
				addOrMerge(NamedInterface{Name: name, Classes: exposed})
			}
		}
	}

	// Type-annotated sources (spec.md §4.4 bullet 2), with propagation.
	for _, cl := range moduleClasses.All() {
		for _, fqn := range namedInterfaceFQNs {
			for _, a := range cl.Annotations {
				if a.FQN != fqn {
					continue
				}
				names := a.AttributeList("name")
				if len(names) == 0 {
					names = []string{cl.PackageName().LocalName()}
				}
				classes := []classmodel.Class{cl}
				if a.AttributeBool("propagate", false) {
					classes = append(classes, r.propagate(cl, moduleClasses)...)
				}
				set := classmodel.NewClasses(classes)
				for _, name := range names {
					addOrMerge(NamedInterface{Name: name, Classes: set})
				}
			}
		}
	}

	unnamed := r.resolveUnnamed(basePackage, moduleClasses, open, explicit)
	explicit[domain.UnnamedInterfaceName] = unnamed

	return newNamedInterfaces(explicit)
}

// propagate transitively includes public types related through the annotated
// type's public constructors/methods (both parameter and return types),
// skipping cycles and bounded to the module's own class set (spec.md §4.4).
func (r *NamedInterfaceResolver) propagate(root classmodel.Class, universe classmodel.Classes) []classmodel.Class {
	visited := map[string]struct{}{root.FQN: {}}
	var out []classmodel.Class
	queue := []classmodel.Class{root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		related := relatedTypes(cur)
		for _, fqn := range related {
			if _, seen := visited[fqn]; seen {
				continue
			}
			visited[fqn] = struct{}{}
			next, ok := universe.Get(fqn)
			if !ok || !next.Public {
				continue
			}
			out = append(out, next)
			queue = append(queue, next)
		}
	}
	return out
}

func relatedTypes(cl classmodel.Class) []string {
	var out []string
	for _, c := range cl.Constructors {
		if !c.Public {
			continue
		}
		for _, p := range c.Parameters {
			out = append(out, p.Type)
		}
	}
	for _, m := range cl.Methods {
		if !m.Public {
			continue
		}
		for _, p := range m.Parameters {
			out = append(out, p.Type)
		}
		if m.ReturnType != "" && m.ReturnType != "void" {
			out = append(out, m.ReturnType)
		}
	}
	return out
}

// resolveUnnamed implements spec.md §4.4's unnamed-interface policy.
func (r *NamedInterfaceResolver) resolveUnnamed(basePackage classmodel.PackageName, moduleClasses classmodel.Classes, open bool, explicit map[string]NamedInterface) NamedInterface {
	pkg := classmodel.Of(moduleClasses, basePackage, r.source)
	allExposed := exposedClassesOfModule(pkg, r.catalog)

	if open {
		return NamedInterface{Name: domain.UnnamedInterfaceName, Classes: allExposed}
	}

	excluded := map[string]struct{}{}
	for name, ni := range explicit {
		if name == domain.UnnamedInterfaceName {
			continue
		}
		for _, c := range ni.Classes.All() {
			excluded[c.FQN] = struct{}{}
		}
	}
	kept := allExposed.Filter(func(c classmodel.Class) bool {
		_, skip := excluded[c.FQN]
		return !skip
	})
	return NamedInterface{Name: domain.UnnamedInterfaceName, Classes: kept}
}

// exposedClassesOfModule returns every public class across the whole module
// package tree (base package plus all descendants).
func exposedClassesOfModule(pkg *classmodel.JavaPackage, _ domain.StereotypeCatalog) classmodel.Classes {
	return pkg.AllClasses().Filter(func(c classmodel.Class) bool { return c.Public })
}

// NamedInterfaceBuilder offers the fluent configuration from spec.md §4.4:
// select subpackages by trailing-name wildcard expression or predicate, with
// excludes; the unnamed interface is always produced by Build.
type NamedInterfaceBuilder struct {
	basePackage classmodel.PackageName
	moduleClasses classmodel.Classes
	source        classmodel.PackageAnnotationSource
	open          bool

	includes []func(classmodel.PackageName) bool
	excludes []func(classmodel.PackageName) bool
}

// NewNamedInterfaceBuilder starts a builder for a module.
func NewNamedInterfaceBuilder(basePackage classmodel.PackageName, moduleClasses classmodel.Classes, source classmodel.PackageAnnotationSource, open bool) *NamedInterfaceBuilder {
	return &NamedInterfaceBuilder{basePackage: basePackage, moduleClasses: moduleClasses, source: source, open: open}
}

// FromTrailingName selects sub-packages whose trailing name (relative to the
// base package) matches expression. Wildcards `*`/`?` apply to the full
// trailing name when expression contains a dot, else to each name segment.
func (b *NamedInterfaceBuilder) FromTrailingName(name, expression string) *NamedInterfaceBuilder {
	matchesWholeTrailing := strings.Contains(expression, ".")
	b.includes = append(b.includes, func(pkg classmodel.PackageName) bool {
		trailing := pkg.TrailingName(b.basePackage)
		if trailing == "" {
			return false
		}
		if matchesWholeTrailing {
			ok, _ := doublestar.Match(expression, trailing)
			return ok
		}
		for _, seg := range strings.Split(trailing, ".") {
			if ok, _ := doublestar.Match(expression, seg); ok {
				return true
			}
		}
		return false
	})
	return b
}

// FromPredicate selects sub-packages matching an arbitrary predicate.
func (b *NamedInterfaceBuilder) FromPredicate(predicate func(classmodel.PackageName) bool) *NamedInterfaceBuilder {
	b.includes = append(b.includes, predicate)
	return b
}

// Excluding excludes sub-packages matching an arbitrary predicate.
func (b *NamedInterfaceBuilder) Excluding(predicate func(classmodel.PackageName) bool) *NamedInterfaceBuilder {
	b.excludes = append(b.excludes, predicate)
	return b
}

// Build materializes a NamedInterfaces value from the configured selection
// rules, always including the UNNAMED interface.
func (b *NamedInterfaceBuilder) Build(name string) NamedInterfaces {
	pkg := classmodel.Of(b.moduleClasses, b.basePackage, b.source)
	var matched []classmodel.Class
	for _, sub := range pkg.SubPackages() {
		if !b.matches(sub) {
			continue
		}
		matched = append(matched, classmodel.Of(b.moduleClasses, sub, b.source).ExposedClasses().All()...)
	}
	explicit := map[string]NamedInterface{name: {Name: name, Classes: classmodel.NewClasses(matched)}}
	unnamed := (&NamedInterfaceResolver{source: b.source}).resolveUnnamed(b.basePackage, b.moduleClasses, b.open, explicit)
	explicit[domain.UnnamedInterfaceName] = unnamed
	return newNamedInterfaces(explicit)
}

func (b *NamedInterfaceBuilder) matches(pkg classmodel.PackageName) bool {
	included := len(b.includes) == 0
	for _, f := range b.includes {
		if f(pkg) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, f := range b.excludes {
		if f(pkg) {
			return false
		}
	}
	return true
}
