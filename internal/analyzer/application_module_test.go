package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

// buildModules constructs an ApplicationModules for a dedicated root package,
// bypassing analyzer.Of's process-wide cache collisions between test cases by
// giving every caller its own root package namespace.
func buildModules(t *testing.T, importer *classmodel.LiteralImporter, roots []string, opts BuildOptions) *ApplicationModules {
	t.Helper()
	if opts.Strategy == nil {
		opts.Strategy = DirectSubPackagesStrategy{}
	}
	if opts.Catalog == nil {
		opts.Catalog = domain.DefaultStereotypeCatalog()
	}
	if opts.Source == nil {
		opts.Source = importer
	}
	modules, err := Of(context.Background(), importer, roots, opts)
	require.NoError(t, err)
	return modules
}

func TestApplicationModule_ClassesAreScopedToBasePackageMinusExclusions(t *testing.T) {
	orderService := classmodel.Class{FQN: "com.acme.app1.order.OrderService", Public: true}
	internalHelper := classmodel.Class{FQN: "com.acme.app1.order.internal.Helper", Public: false}
	inventoryApi := classmodel.Class{FQN: "com.acme.app1.inventory.InventoryApi", Public: true}

	importer := classmodel.NewLiteralImporter(orderService, internalHelper, inventoryApi)
	modules := buildModules(t, importer, []string{"com.acme.app1"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	assert.True(t, order.Contains(orderService.FQN))
	assert.True(t, order.Contains(internalHelper.FQN))
	assert.False(t, order.Contains(inventoryApi.FQN))
}

func TestApplicationModule_CouldContainRespectsExclusions(t *testing.T) {
	rootService := classmodel.Class{FQN: "com.acme.app2.order.OrderService", Public: true}
	nestedModuleClass := classmodel.Class{FQN: "com.acme.app2.order.billing.BillingService", Public: true}
	marker := classmodel.Class{
		FQN:     "com.acme.app2.order.billing.BillingModuleMarker",
		Public:  true,
		Package: "com.acme.app2.order.billing",
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.modulith.ApplicationModule", Attributes: map[string]string{"open": "true"}},
		},
	}

	importer := classmodel.NewLiteralImporter(rootService, nestedModuleClass, marker)
	importer.WithPackageDescriptor("com.acme.app2.order.billing", marker.FQN)

	modules := buildModules(t, importer, []string{"com.acme.app2"}, BuildOptions{})

	billing, ok := modules.ModuleByIdentifier("order.billing")
	require.True(t, ok)
	assert.True(t, billing.Contains(nestedModuleClass.FQN))
	assert.True(t, billing.IsOpen())

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	assert.False(t, order.Contains(nestedModuleClass.FQN))
	assert.False(t, order.CouldContain(nestedModuleClass.FQN))
	assert.True(t, order.Contains(rootService.FQN))
	assert.True(t, order.CouldContain(rootService.FQN))
}

func TestApplicationModule_SpringBeansCollectsComponentFamily(t *testing.T) {
	service := classmodel.Class{
		FQN:    "com.acme.app3.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
	}
	repo := classmodel.Class{
		FQN:    "com.acme.app3.order.OrderRepository",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Repository"},
		},
	}
	plain := classmodel.Class{FQN: "com.acme.app3.order.OrderLine", Public: true}

	importer := classmodel.NewLiteralImporter(service, repo, plain)
	modules := buildModules(t, importer, []string{"com.acme.app3"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{service.FQN, repo.FQN}, order.SpringBeans())
}

func TestApplicationModule_GetAggregateRootsIncludesSuperTypes(t *testing.T) {
	base := classmodel.Class{FQN: "com.acme.app4.order.AbstractOrder", Public: true}
	entity := classmodel.Class{
		FQN:        "com.acme.app4.order.Order",
		Public:     true,
		SuperTypes: []string{base.FQN},
		Annotations: []classmodel.Annotation{
			{FQN: "jakarta.persistence.Entity"},
		},
	}
	importer := classmodel.NewLiteralImporter(base, entity)
	modules := buildModules(t, importer, []string{"com.acme.app4"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	roots := order.GetAggregateRoots()
	var fqns []string
	for _, r := range roots {
		fqns = append(fqns, r.FQN)
	}
	assert.ElementsMatch(t, []string{entity.FQN, base.FQN}, fqns)
}

func TestApplicationModule_GetValueTypesExcludesBeansAndEntities(t *testing.T) {
	service := classmodel.Class{
		FQN:    "com.acme.app5.order.OrderService",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.stereotype.Service"},
		},
	}
	entity := classmodel.Class{
		FQN:    "com.acme.app5.order.Order",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "jakarta.persistence.Entity"},
		},
	}
	valueObj := classmodel.Class{FQN: "com.acme.app5.order.Money", Public: true}

	importer := classmodel.NewLiteralImporter(service, entity, valueObj)
	modules := buildModules(t, importer, []string{"com.acme.app5"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	values := order.GetValueTypes()
	require.Len(t, values, 1)
	assert.Equal(t, valueObj.FQN, values[0].FQN)
}

func TestApplicationModule_GetPublishedEvents(t *testing.T) {
	event := classmodel.Class{
		FQN:    "com.acme.app6.order.OrderPlaced",
		Public: true,
		Annotations: []classmodel.Annotation{
			{FQN: "org.springframework.modulith.events.Externalized"},
		},
	}
	other := classmodel.Class{FQN: "com.acme.app6.order.OrderLine", Public: true}

	importer := classmodel.NewLiteralImporter(event, other)
	modules := buildModules(t, importer, []string{"com.acme.app6"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	events := order.GetPublishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, event.FQN, events[0].FQN)
}

func TestApplicationModule_GetArchitecturallyEvidentType_UnknownClassErrors(t *testing.T) {
	service := classmodel.Class{FQN: "com.acme.app7.order.OrderService", Public: true}
	importer := classmodel.NewLiteralImporter(service)
	modules := buildModules(t, importer, []string{"com.acme.app7"}, BuildOptions{})

	order, ok := modules.ModuleByIdentifier("order")
	require.True(t, ok)
	_, err := order.GetArchitecturallyEvidentType("com.acme.app7.order.Missing")
	require.Error(t, err)
}
