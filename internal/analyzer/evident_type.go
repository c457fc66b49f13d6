// Package analyzer implements the module model and architectural verifier
// layered on top of internal/classmodel: the architecturally-evident type
// classifier, dependency extraction, named-interface resolution,
// allowed-dependency policy, and the modules container and verifier
// (spec.md §4.2-§4.7).
package analyzer

import (
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// EvidentType is the boolean-role classification of a single class
// (spec.md §4.2), replacing the original's ArchitecturallyEvidentType
// inheritance hierarchy with a flat struct of independent role flags
// (spec.md §9 redesign note) populated by a pipeline of detector functions.
type EvidentType struct {
	Class classmodel.Class

	IsAggregateRoot         bool
	IsEntity                bool
	IsRepository            bool
	IsService               bool
	IsController            bool
	IsEventListener         bool
	IsValueObject           bool
	IsConfigurationProperties bool
	IsConfiguration         bool
	IsKnownBean             bool

	// ReferenceTypes holds the distinct parameter types of methods recognized
	// as event listeners (populated only when IsEventListener).
	ReferenceTypes []string
	// ReferenceMethods holds the listener methods with async/transaction-phase info.
	ReferenceMethods []ListenerMethod
}

// ListenerMethod is an event-listener method with the accessors spec.md §4.2 requires.
type ListenerMethod struct {
	Method          classmodel.Method
	Async           bool
	TransactionPhase string // "" when not a @TransactionalEventListener
}

// IsInjectable implements spec.md §4.2's composition rule:
// isInjectable ≡ isService ∨ isController ∨ isEventListener ∨ isConfigurationProperties ∨ known bean.
func (e EvidentType) IsInjectable() bool {
	return e.IsService || e.IsController || e.IsEventListener || e.IsConfigurationProperties || e.IsKnownBean
}

// EvidentTypeClassifier composes independent classifiers (framework-stereotype,
// persistence-stereotype, DDD-stereotype) into the union of roles they report,
// grounded on the teacher's framework_patterns.go annotation-table approach
// and di_antipattern_detector.go's composition-of-independent-detectors shape.
type EvidentTypeClassifier struct {
	catalog domain.StereotypeCatalog
	// knownBeans is the set of FQNs of classes recognized as beans within the
	// enclosing module (passed in per spec.md §4.2 "module's internal bean set").
	knownBeans map[string]struct{}
}

// NewEvidentTypeClassifier builds a classifier bound to catalog and the
// module's known-bean set.
func NewEvidentTypeClassifier(catalog domain.StereotypeCatalog, knownBeanFQNs []string) *EvidentTypeClassifier {
	beans := make(map[string]struct{}, len(knownBeanFQNs))
	for _, fqn := range knownBeanFQNs {
		beans[fqn] = struct{}{}
	}
	return &EvidentTypeClassifier{catalog: catalog, knownBeans: beans}
}

// Classify returns c's EvidentType as the union of every independent detector's roles.
func (c *EvidentTypeClassifier) Classify(cl classmodel.Class) EvidentType {
	et := EvidentType{Class: cl}
	c.classifyFrameworkStereotypes(cl, &et)
	c.classifyPersistenceStereotypes(cl, &et)
	c.classifyDDDStereotypes(cl, &et)
	c.classifyEventListener(cl, &et)
	_, et.IsKnownBean = c.knownBeans[cl.FQN]
	return et
}

func (c *EvidentTypeClassifier) classifyFrameworkStereotypes(cl classmodel.Class, et *EvidentType) {
	for _, a := range cl.Annotations {
		switch {
		case c.catalog.Has(a.FQN, domain.StereotypeService):
			et.IsService = true
		case c.catalog.Has(a.FQN, domain.StereotypeController):
			et.IsController = true
		case c.catalog.Has(a.FQN, domain.StereotypeConfiguration):
			et.IsConfiguration = true
		case c.catalog.Has(a.FQN, domain.StereotypeConfigurationProperties):
			et.IsConfigurationProperties = true
		case c.catalog.Has(a.FQN, domain.StereotypeComponent):
			et.IsKnownBean = true
		}
	}
}

func (c *EvidentTypeClassifier) classifyPersistenceStereotypes(cl classmodel.Class, et *EvidentType) {
	for _, a := range cl.Annotations {
		if c.catalog.Has(a.FQN, domain.StereotypeEntity) {
			et.IsEntity = true
		}
	}
	for _, a := range cl.Annotations {
		if c.catalog.Has(a.FQN, domain.StereotypeRepository) {
			et.IsRepository = true
		}
	}
}

// classifyDDDStereotypes applies lightweight structural heuristics: every
// entity is an aggregate root (ApplicationModule.GetAggregateRoots also folds
// in super-class chains); a value object is any public class that is not an
// entity, repository, service or controller. Other beans (such as plain
// components) are not excluded, and fields are not inspected for an id.
func (c *EvidentTypeClassifier) classifyDDDStereotypes(cl classmodel.Class, et *EvidentType) {
	if et.IsEntity {
		et.IsAggregateRoot = true
	}
	if !et.IsEntity && !et.IsRepository && !et.IsService && !et.IsController && cl.Public {
		et.IsValueObject = true
	}
}

func (c *EvidentTypeClassifier) classifyEventListener(cl classmodel.Class, et *EvidentType) {
	var referenceTypes []string
	var referenceMethods []ListenerMethod
	seen := map[string]struct{}{}

	for _, m := range cl.Methods {
		if m.Synthetic {
			continue
		}
		isDeclaredListener := false
		transactionPhase := ""
		async := false
		for _, a := range m.Annotations {
			if c.catalog.Has(a.FQN, domain.StereotypeEventListener) {
				isDeclaredListener = true
			}
			if c.catalog.Has(a.FQN, domain.StereotypeTransactionalListener) {
				isDeclaredListener = true
				transactionPhase = a.Attributes["phase"]
				if transactionPhase == "" {
					transactionPhase = "AFTER_COMMIT"
				}
			}
			if c.catalog.Has(a.FQN, domain.StereotypeDomainEventHandler) {
				isDeclaredListener = true
			}
			if c.catalog.Has(a.FQN, domain.StereotypeAsync) {
				async = true
			}
		}
		isApplicationListenerMethod := m.Name == "onApplicationEvent" && c.implementsApplicationListener(cl) && len(m.Parameters) == 1

		if !isDeclaredListener && !isApplicationListenerMethod {
			continue
		}
		et.IsEventListener = true
		for _, p := range m.Parameters {
			if _, dup := seen[p.Type]; !dup {
				seen[p.Type] = struct{}{}
				referenceTypes = append(referenceTypes, p.Type)
			}
		}
		referenceMethods = append(referenceMethods, ListenerMethod{Method: m, Async: async, TransactionPhase: transactionPhase})
	}

	et.ReferenceTypes = referenceTypes
	et.ReferenceMethods = referenceMethods
}

func (c *EvidentTypeClassifier) implementsApplicationListener(cl classmodel.Class) bool {
	for _, super := range cl.SuperTypes {
		for _, fqn := range c.catalog.AnnotationsFor(domain.StereotypeApplicationListener) {
			if super == fqn {
				return true
			}
		}
	}
	return false
}
