package analyzer

import (
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// DependencyEdge is a typed inter-type dependency (spec.md §3).
type DependencyEdge struct {
	Source      string
	Target      string
	Description string
	Kind        domain.DependencyKind

	// originatingField is set when this USES_COMPONENT edge came from a
	// field, as opposed to a constructor or method parameter — the detail
	// spec.md §3/§4.6 calls the InjectionEdge subtype.
	originatingField bool
	ownerConfiguration bool
}

func (e DependencyEdge) key() [4]string {
	return [4]string{e.Source, e.Target, e.Description, string(e.Kind)}
}

// IsFieldInjection reports whether this edge was produced by a field-injected
// dependency on a class that is not itself a configuration class — the
// "prefer constructor injection" check from spec.md §4.6.
func (e DependencyEdge) IsFieldInjection() bool {
	return e.Kind == domain.DependencyKindUsesComponent && e.originatingField && !e.ownerConfiguration
}

// DependencyExtractor implements spec.md §4.3: for each class in a module,
// walks constructors, fields, methods, and direct references to produce
// distinct typed edges, grounded on module_analyzer.go's constructor/field
// import-edge extraction and concrete_dependency_detector.go.
type DependencyExtractor struct {
	classifier *EvidentTypeClassifier
	catalog    domain.StereotypeCatalog
	classes    classmodel.Classes // class universe used for entity lookups
}

// NewDependencyExtractor builds an extractor bound to a classifier, catalog,
// and the class universe used to resolve whether a referenced type is a JPA entity.
func NewDependencyExtractor(classifier *EvidentTypeClassifier, catalog domain.StereotypeCatalog, classes classmodel.Classes) *DependencyExtractor {
	return &DependencyExtractor{classifier: classifier, catalog: catalog, classes: classes}
}

// Extract returns the deduplicated edges for a single class (spec.md §4.3).
func (d *DependencyExtractor) Extract(cl classmodel.Class) []DependencyEdge {
	et := d.classifier.Classify(cl)

	seen := map[[4]string]struct{}{}
	var edges []DependencyEdge
	add := func(e DependencyEdge) {
		e.ownerConfiguration = et.IsConfiguration
		k := e.key()
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		edges = append(edges, e)
	}

	d.extractConstructors(cl, et, add)
	d.extractFields(cl, add)
	d.extractMethods(cl, add)
	d.extractDirectReferences(cl, add)

	return edges
}

func (d *DependencyExtractor) isCore(fqn string) bool {
	return classmodel.IsCoreJavaName(fqn)
}

func (d *DependencyExtractor) isEntityType(fqn string) bool {
	cl, ok := d.classes.Get(fqn)
	if !ok {
		return false
	}
	for _, a := range cl.Annotations {
		if d.catalog.Has(a.FQN, domain.StereotypeEntity) {
			return true
		}
	}
	return false
}

// extractConstructors implements spec.md §4.3.1: constructor parameters.
func (d *DependencyExtractor) extractConstructors(cl classmodel.Class, et EvidentType, add func(DependencyEdge)) {
	if len(cl.Constructors) == 0 {
		return
	}
	injectionFQNs := d.catalog.AnnotationsFor(domain.StereotypeInjectAnnotation)
	useInjectionSemantics := et.IsInjectable() && !et.IsConfigurationProperties &&
		(len(cl.Constructors) == 1 || anyConstructorInjectionAnnotated(cl.Constructors, injectionFQNs))

	for _, ctor := range cl.Constructors {
		injectionAnnotated := ctor.HasAnyOf(injectionFQNs)
		useThisCtor := useInjectionSemantics && (len(cl.Constructors) == 1 || injectionAnnotated)
		for _, p := range ctor.Parameters {
			if d.isCore(p.Type) {
				continue
			}
			if useThisCtor {
				add(DependencyEdge{Source: cl.FQN, Target: p.Type, Description: "constructor parameter", Kind: domain.DependencyKindUsesComponent})
			} else {
				kind := domain.DependencyKindDefault
				if d.isEntityType(p.Type) {
					kind = domain.DependencyKindEntity
				}
				add(DependencyEdge{Source: cl.FQN, Target: p.Type, Description: "constructor parameter", Kind: kind})
			}
		}
	}
}

func anyConstructorInjectionAnnotated(ctors []classmodel.Constructor, injectionFQNs []string) bool {
	for _, c := range ctors {
		if c.HasAnyOf(injectionFQNs) {
			return true
		}
	}
	return false
}

// extractFields implements spec.md §4.3.2.
func (d *DependencyExtractor) extractFields(cl classmodel.Class, add func(DependencyEdge)) {
	injectionFQNs := d.catalog.AnnotationsFor(domain.StereotypeInjectAnnotation)
	for _, f := range cl.Fields {
		if !f.HasAnyOf(injectionFQNs) {
			continue
		}
		if d.isCore(f.Type) {
			continue
		}
		add(DependencyEdge{Source: cl.FQN, Target: f.Type, Description: "field " + f.Name, Kind: domain.DependencyKindUsesComponent, originatingField: true})
	}
}

// extractMethods implements spec.md §4.3.3.
func (d *DependencyExtractor) extractMethods(cl classmodel.Class, add func(DependencyEdge)) {
	injectionFQNs := d.catalog.AnnotationsFor(domain.StereotypeInjectAnnotation)
	for _, m := range cl.Methods {
		injectionAnnotated := m.HasAnyOf(injectionFQNs)
		isListener := d.isListenerMethod(m)

		for _, p := range m.Parameters {
			if d.isCore(p.Type) {
				continue
			}
			if injectionAnnotated {
				add(DependencyEdge{Source: cl.FQN, Target: p.Type, Description: "method " + m.Name + " parameter", Kind: domain.DependencyKindUsesComponent})
				continue
			}
			kind := domain.DependencyKindDefault
			switch {
			case isListener:
				kind = domain.DependencyKindEventListener
			case d.isEntityType(p.Type):
				kind = domain.DependencyKindEntity
			}
			add(DependencyEdge{Source: cl.FQN, Target: p.Type, Description: "method " + m.Name + " parameter", Kind: kind})
		}

		if !injectionAnnotated && m.ReturnType != "" && m.ReturnType != "void" && !d.isCore(m.ReturnType) {
			kind := domain.DependencyKindDefault
			switch {
			case isListener:
				kind = domain.DependencyKindEventListener
			case d.isEntityType(m.ReturnType):
				kind = domain.DependencyKindEntity
			}
			add(DependencyEdge{Source: cl.FQN, Target: m.ReturnType, Description: "method " + m.Name + " return type", Kind: kind})
		}
	}
}

func (d *DependencyExtractor) isListenerMethod(m classmodel.Method) bool {
	for _, a := range m.Annotations {
		if d.catalog.Has(a.FQN, domain.StereotypeEventListener) ||
			d.catalog.Has(a.FQN, domain.StereotypeTransactionalListener) ||
			d.catalog.Has(a.FQN, domain.StereotypeDomainEventHandler) {
			return true
		}
	}
	return false
}

// extractDirectReferences implements spec.md §4.3.4.
func (d *DependencyExtractor) extractDirectReferences(cl classmodel.Class, add func(DependencyEdge)) {
	for _, ref := range cl.References {
		if d.isCore(ref.Target) {
			continue
		}
		kind := domain.DependencyKindDefault
		if d.isEntityType(ref.Target) {
			kind = domain.DependencyKindEntity
		}
		add(DependencyEdge{Source: cl.FQN, Target: ref.Target, Description: ref.Description, Kind: kind})
	}
}
