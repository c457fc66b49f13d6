package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

func newExtractor(classes ...classmodel.Class) *DependencyExtractor {
	catalog := domain.DefaultStereotypeCatalog()
	classifier := NewEvidentTypeClassifier(catalog, nil)
	return NewDependencyExtractor(classifier, catalog, classmodel.NewClasses(classes))
}

func findEdge(edges []DependencyEdge, target string) (DependencyEdge, bool) {
	for _, e := range edges {
		if e.Target == target {
			return e, true
		}
	}
	return DependencyEdge{}, false
}

func TestDependencyExtractor_ConstructorInjectionOnService(t *testing.T) {
	repo := classmodel.Class{FQN: "com.acme.order.OrderRepository", Public: true}
	service := classmodel.Class{
		FQN:    "com.acme.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
		Constructors: []classmodel.Constructor{
			{Public: true, Parameters: []classmodel.Parameter{{Name: "repo", Type: repo.FQN}}},
		},
	}
	extractor := newExtractor(service, repo)
	edges := extractor.Extract(service)

	edge, ok := findEdge(edges, repo.FQN)
	require.True(t, ok)
	assert.Equal(t, domain.DependencyKindUsesComponent, edge.Kind)
	assert.False(t, edge.IsFieldInjection())
}

func TestDependencyExtractor_ConstructorParamOnNonInjectableDefaultsToEntityOrDefault(t *testing.T) {
	entity := classmodel.Class{
		FQN:    "com.acme.order.Order",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "jakarta.persistence.Entity"},
		},
	}
	plain := classmodel.Class{
		FQN:    "com.acme.order.OrderLine",
		Public: true,
		Constructors: []classmodel.Constructor{
			{Public: true, Parameters: []classmodel.Parameter{{Name: "order", Type: entity.FQN}}},
		},
	}
	extractor := newExtractor(plain, entity)
	edges := extractor.Extract(plain)

	edge, ok := findEdge(edges, entity.FQN)
	require.True(t, ok)
	assert.Equal(t, domain.DependencyKindEntity, edge.Kind)
}

func TestDependencyExtractor_CoreJavaParametersSkipped(t *testing.T) {
	service := classmodel.Class{
		FQN:    "com.acme.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
		Constructors: []classmodel.Constructor{
			{Public: true, Parameters: []classmodel.Parameter{{Name: "name", Type: "java.lang.String"}}},
		},
	}
	extractor := newExtractor(service)
	edges := extractor.Extract(service)
	assert.Empty(t, edges)
}

func TestDependencyExtractor_PrimitiveParametersSkipped(t *testing.T) {
	service := classmodel.Class{
		FQN:    "com.acme.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
		Constructors: []classmodel.Constructor{
			{Public: true, Parameters: []classmodel.Parameter{
				{Name: "retries", Type: "int"},
				{Name: "enabled", Type: "boolean"},
				{Name: "codes", Type: "int[]"},
			}},
		},
	}
	extractor := newExtractor(service)
	edges := extractor.Extract(service)
	assert.Empty(t, edges)
}

func TestDependencyExtractor_FieldInjectionFlagged(t *testing.T) {
	repo := classmodel.Class{FQN: "com.acme.order.OrderRepository", Public: true}
	service := classmodel.Class{
		FQN:    "com.acme.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
		Fields: []classmodel.Field{
			{
				Name: "repo",
				Type: repo.FQN,
				Annotations: []classmodel.Annotation{
					{FQN: "org.springframework.beans.factory.annotation.Autowired"},
				},
			},
		},
	}
	extractor := newExtractor(service, repo)
	edges := extractor.Extract(service)

	edge, ok := findEdge(edges, repo.FQN)
	require.True(t, ok)
	assert.True(t, edge.IsFieldInjection())
}

func TestDependencyExtractor_FieldInjectionNotFlaggedOnConfigurationClass(t *testing.T) {
	repo := classmodel.Class{FQN: "com.acme.order.OrderRepository", Public: true}
	config := classmodel.Class{
		FQN:    "com.acme.order.OrderConfiguration",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.context.annotation.Configuration"},
		},
		Fields: []classmodel.Field{
			{
				Name: "repo",
				Type: repo.FQN,
				Annotations: []classmodel.Annotation{
					{FQN: "jakarta.inject.Inject"},
				},
			},
		},
	}
	extractor := newExtractor(config, repo)
	edges := extractor.Extract(config)

	edge, ok := findEdge(edges, repo.FQN)
	require.True(t, ok)
	assert.False(t, edge.IsFieldInjection())
}

func TestDependencyExtractor_ListenerMethodParameterKindEventListener(t *testing.T) {
	event := classmodel.Class{FQN: "com.acme.order.OrderPlaced", Public: true}
	handler := classmodel.Class{
		FQN:    "com.acme.order.OrderProjector",
		Public: true,
		Methods: []classmodel.Method{
			{
				Name:   "on",
				Public: true,
				Parameters: []classmodel.Parameter{{Name: "event", Type: event.FQN}},
				Annotations: []classmodel.Annotation{
					{FQN: "org.springframework.context.event.EventListener"},
				},
			},
		},
	}
	extractor := newExtractor(handler, event)
	edges := extractor.Extract(handler)

	edge, ok := findEdge(edges, event.FQN)
	require.True(t, ok)
	assert.Equal(t, domain.DependencyKindEventListener, edge.Kind)
}

func TestDependencyExtractor_DirectReferenceDefaultsToEntityWhenTargetIsEntity(t *testing.T) {
	entity := classmodel.Class{
		FQN:    "com.acme.order.Order",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "jakarta.persistence.Entity"},
		},
	}
	caller := classmodel.Class{
		FQN: "com.acme.order.OrderMapper",
		References: []classmodel.ClassRef{
			{Target: entity.FQN, Description: "static reference"},
		},
	}
	extractor := newExtractor(caller, entity)
	edges := extractor.Extract(caller)

	edge, ok := findEdge(edges, entity.FQN)
	require.True(t, ok)
	assert.Equal(t, domain.DependencyKindEntity, edge.Kind)
	assert.Equal(t, "static reference", edge.Description)
}

func TestDependencyExtractor_DedupesRepeatedEdges(t *testing.T) {
	repo := classmodel.Class{FQN: "com.acme.order.OrderRepository", Public: true}
	caller := classmodel.Class{
		FQN: "com.acme.order.OrderMapper",
		References: []classmodel.ClassRef{
			{Target: repo.FQN, Description: "static reference"},
			{Target: repo.FQN, Description: "static reference"},
		},
	}
	extractor := newExtractor(caller, repo)
	edges := extractor.Extract(caller)

	count := 0
	for _, e := range edges {
		if e.Target == repo.FQN {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
