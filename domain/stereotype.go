package domain

// Stereotype identifies one of the roles an ArchitecturallyEvidentType (spec.md §4.2)
// can carry. The catalog maps each role to the set of fully-qualified annotation
// names a class importer may attach to a Class to signal that role.
type Stereotype string

const (
	StereotypeComponent              Stereotype = "component"
	StereotypeService                Stereotype = "service"
	StereotypeController             Stereotype = "controller"
	StereotypeRepository             Stereotype = "repository"
	StereotypeConfiguration          Stereotype = "configuration"
	StereotypeConfigurationProperties Stereotype = "configuration-properties"
	StereotypeEventListener          Stereotype = "event-listener"
	StereotypeTransactionalListener  Stereotype = "transactional-event-listener"
	StereotypeAsync                  Stereotype = "async"
	StereotypeBeanFactoryMethod      Stereotype = "bean-factory-method"
	StereotypeDomainEvent            Stereotype = "domain-event"
	StereotypeDomainEventHandler     Stereotype = "domain-event-handler"
	StereotypeEntity                 Stereotype = "jpa-entity"
	StereotypeValidator              Stereotype = "validator-supertype"
	StereotypeInjectAnnotation       Stereotype = "injection-annotation"
	StereotypeNamedInterface         Stereotype = "named-interface"
	StereotypeApplicationModule      Stereotype = "application-module"
	StereotypeApplicationListener    Stereotype = "application-listener-interface"
)

// StereotypeCatalog answers, for a fully-qualified annotation (or interface) name,
// which stereotypes it denotes. Configuration (internal/config) supplies the
// production catalog; DefaultStereotypeCatalog documents the out-of-the-box set.
type StereotypeCatalog interface {
	// Stereotypes returns every role that the given fully-qualified annotation name denotes.
	Stereotypes(annotationFQN string) []Stereotype
	// AnnotationsFor returns every FQN registered for the given stereotype.
	AnnotationsFor(s Stereotype) []string
	// Has reports whether annotationFQN denotes the given stereotype.
	Has(annotationFQN string, s Stereotype) bool
}

// MapStereotypeCatalog is a StereotypeCatalog backed by a plain map, the shape
// internal/config populates from TOML/defaults.
type MapStereotypeCatalog struct {
	byAnnotation map[string][]Stereotype
	byStereotype map[Stereotype][]string
}

// NewMapStereotypeCatalog builds a catalog from a stereotype -> annotation FQNs map.
func NewMapStereotypeCatalog(annotations map[Stereotype][]string) *MapStereotypeCatalog {
	c := &MapStereotypeCatalog{
		byAnnotation: make(map[string][]Stereotype),
		byStereotype: make(map[Stereotype][]string, len(annotations)),
	}
	for stereotype, fqns := range annotations {
		c.byStereotype[stereotype] = append([]string(nil), fqns...)
		for _, fqn := range fqns {
			c.byAnnotation[fqn] = append(c.byAnnotation[fqn], stereotype)
		}
	}
	return c
}

func (c *MapStereotypeCatalog) Stereotypes(annotationFQN string) []Stereotype {
	return append([]Stereotype(nil), c.byAnnotation[annotationFQN]...)
}

func (c *MapStereotypeCatalog) AnnotationsFor(s Stereotype) []string {
	return append([]string(nil), c.byStereotype[s]...)
}

func (c *MapStereotypeCatalog) Has(annotationFQN string, s Stereotype) bool {
	for _, candidate := range c.byAnnotation[annotationFQN] {
		if candidate == s {
			return true
		}
	}
	return false
}

// DefaultStereotypeCatalog returns the catalog documented in spec.md §4.2/§6 as the default,
// modeled on the common Spring annotation vocabulary.
func DefaultStereotypeCatalog() *MapStereotypeCatalog {
	return NewMapStereotypeCatalog(map[Stereotype][]string{
		StereotypeComponent:    {"org.springframework.stereotype.Component"},
		StereotypeService:      {"org.springframework.stereotype.Service"},
		StereotypeController:   {"org.springframework.stereotype.Controller", "org.springframework.web.bind.annotation.RestController"},
		StereotypeRepository:   {"org.springframework.stereotype.Repository"},
		StereotypeConfiguration: {"org.springframework.context.annotation.Configuration"},
		StereotypeConfigurationProperties: {"org.springframework.boot.context.properties.ConfigurationProperties"},
		StereotypeEventListener:         {"org.springframework.context.event.EventListener"},
		StereotypeTransactionalListener: {"org.springframework.transaction.event.TransactionalEventListener"},
		StereotypeAsync:                 {"org.springframework.scheduling.annotation.Async"},
		StereotypeBeanFactoryMethod:     {"org.springframework.context.annotation.Bean"},
		StereotypeDomainEvent:           {"org.springframework.modulith.events.Externalized"},
		StereotypeDomainEventHandler:    {"org.springframework.modulith.events.ApplicationModuleListener"},
		StereotypeEntity:                {"jakarta.persistence.Entity", "javax.persistence.Entity"},
		StereotypeValidator:             {"jakarta.validation.ConstraintValidator", "javax.validation.ConstraintValidator"},
		StereotypeInjectAnnotation: {
			"org.springframework.beans.factory.annotation.Autowired",
			"jakarta.inject.Inject",
			"javax.inject.Inject",
		},
		StereotypeNamedInterface:      {"org.springframework.modulith.NamedInterface"},
		StereotypeApplicationModule:   {"org.springframework.modulith.ApplicationModule"},
		StereotypeApplicationListener: {"org.springframework.context.ApplicationListener"},
	})
}
