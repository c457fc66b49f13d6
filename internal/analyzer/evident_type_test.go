package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

func TestEvidentTypeClassifier_FrameworkStereotypes(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	service := classmodel.Class{
		FQN:    "com.acme.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
	}
	et := classifier.Classify(service)
	assert.True(t, et.IsService)
	assert.True(t, et.IsInjectable())
	assert.False(t, et.IsValueObject)

	controller := classmodel.Class{
		FQN:    "com.acme.order.OrderController",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.web.bind.annotation.RestController"},
		},
	}
	assert.True(t, classifier.Classify(controller).IsController)
}

func TestEvidentTypeClassifier_EntityIsAggregateRoot(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	entity := classmodel.Class{
		FQN:    "com.acme.order.Order",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "jakarta.persistence.Entity"},
		},
	}
	et := classifier.Classify(entity)
	assert.True(t, et.IsEntity)
	assert.True(t, et.IsAggregateRoot)
}

func TestEvidentTypeClassifier_PlainPublicTypeIsValueObject(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	dto := classmodel.Class{FQN: "com.acme.order.OrderLine", Public: true}
	et := classifier.Classify(dto)
	assert.True(t, et.IsValueObject)
	assert.False(t, et.IsEntity)
	assert.False(t, et.IsInjectable())
}

func TestEvidentTypeClassifier_KnownBeanIsInjectable(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, []string{"com.acme.order.OrderPolicy"})

	policy := classmodel.Class{FQN: "com.acme.order.OrderPolicy", Public: true}
	et := classifier.Classify(policy)
	assert.True(t, et.IsKnownBean)
	assert.True(t, et.IsInjectable())
}

func TestEvidentTypeClassifier_EventListenerMethod(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	listener := classmodel.Class{
		FQN:    "com.acme.order.OrderEventHandler",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Component"},
		},
		Methods: []classmodel.Method{
			{
				Name:       "on",
				Parameters: []classmodel.Parameter{{Name: "event", Type: "com.acme.order.OrderPlaced"}},
				Annotations: []classmodel.Annotation{
					{FQN: "org.springframework.context.event.EventListener"},
				},
				Public: true,
			},
		},
	}
	et := classifier.Classify(listener)
	assert.True(t, et.IsEventListener)
	assert.Equal(t, []string{"com.acme.order.OrderPlaced"}, et.ReferenceTypes)
	assert.Len(t, et.ReferenceMethods, 1)
	assert.False(t, et.ReferenceMethods[0].Async)
}

func TestEvidentTypeClassifier_TransactionalListenerDefaultsToAfterCommit(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	listener := classmodel.Class{
		FQN:    "com.acme.order.OrderProjector",
		Public: true,
		Methods: []classmodel.Method{
			{
				Name:       "onOrderPlaced",
				Parameters: []classmodel.Parameter{{Name: "event", Type: "com.acme.order.OrderPlaced"}},
				Annotations: []classmodel.Annotation{
					{FQN: "org.springframework.transaction.event.TransactionalEventListener"},
				},
				Public: true,
			},
		},
	}
	et := classifier.Classify(listener)
	methods := et.ReferenceMethods
	assert.Len(t, methods, 1)
	assert.Equal(t, "AFTER_COMMIT", methods[0].TransactionPhase)
}

func TestEvidentTypeClassifier_SyntheticMethodsIgnored(t *testing.T) {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)

	cl := classmodel.Class{
		FQN: "com.acme.order.OrderService",
		Methods: []classmodel.Method{
			{
				Name:      "on",
				Synthetic: true,
				Annotations: []classmodel.Annotation{
					{FQN: "org.springframework.context.event.EventListener"},
				},
			},
		},
	}
	et := classifier.Classify(cl)
	assert.False(t, et.IsEventListener)
}
