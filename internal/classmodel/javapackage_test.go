package classmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClasses() []Class {
	return []Class{
		{FQN: "com.acme.order.OrderService", SimpleName: "OrderService", Package: "com.acme.order", Public: true},
		{FQN: "com.acme.order.internal.OrderRepository", SimpleName: "OrderRepository", Package: "com.acme.order.internal", Public: true},
		{FQN: "com.acme.order.api.OrderPort", SimpleName: "OrderPort", Package: "com.acme.order.api", Public: true},
		{FQN: "com.acme.inventory.InventoryService", SimpleName: "InventoryService", Package: "com.acme.inventory", Public: true},
	}
}

func TestJavaPackage_DirectAndSubPackages(t *testing.T) {
	universe := NewClasses(sampleClasses())
	importer := NewLiteralImporter(sampleClasses()...)
	pkg := Of(universe, NewPackageName("com.acme.order"), importer)

	direct := pkg.DirectSubPackages()
	require.Len(t, direct, 2)
	assert.Equal(t, "com.acme.order.api", direct[0].String())
	assert.Equal(t, "com.acme.order.internal", direct[1].String())

	sub := pkg.SubPackages()
	assert.Len(t, sub, 2)
}

func TestJavaPackage_ExposedClasses_ExcludesDescriptor(t *testing.T) {
	classes := []Class{
		{FQN: "com.acme.order.OrderService", Package: "com.acme.order", Public: true},
		{FQN: "com.acme.order.package-info", Package: "com.acme.order", Public: true},
	}
	importer := NewLiteralImporter(classes...).WithPackageDescriptor("com.acme.order", "com.acme.order.package-info")
	pkg := Of(NewClasses(classes), NewPackageName("com.acme.order"), importer)

	exposed := pkg.ExposedClasses()
	assert.Equal(t, 1, exposed.Len())
	assert.True(t, exposed.Contains("com.acme.order.OrderService"))
}

func TestJavaPackage_ToSingle_ExcludesDescendants(t *testing.T) {
	universe := NewClasses(sampleClasses())
	importer := NewLiteralImporter(sampleClasses()...)
	pkg := Of(universe, NewPackageName("com.acme.order"), importer).ToSingle()

	assert.Equal(t, 1, pkg.AllClasses().Len())
	assert.True(t, pkg.AllClasses().Contains("com.acme.order.OrderService"))
}

func TestJavaPackage_Without_RemovesExclusions(t *testing.T) {
	universe := NewClasses(sampleClasses())
	importer := NewLiteralImporter(sampleClasses()...)
	pkg := Of(universe, NewPackageName("com.acme.order"), importer).
		Without([]PackageName{NewPackageName("com.acme.order.internal")})

	assert.False(t, pkg.AllClasses().Contains("com.acme.order.internal.OrderRepository"))
	assert.True(t, pkg.AllClasses().Contains("com.acme.order.api.OrderPort"))
}

func TestJavaPackage_FindAnnotation_AmbiguousFails(t *testing.T) {
	classes := []Class{
		{
			FQN: "com.acme.order.A", Package: "com.acme.order", Public: true,
			Annotations: []Annotation{{FQN: "org.springframework.modulith.NamedInterface"}},
		},
		{
			FQN: "com.acme.order.B", Package: "com.acme.order", Public: true,
			Annotations: []Annotation{{FQN: "org.springframework.modulith.NamedInterface"}},
		},
	}
	importer := NewLiteralImporter(classes...)
	pkg := Of(NewClasses(classes), NewPackageName("com.acme.order"), importer)

	_, _, err := pkg.FindAnnotation("org.springframework.modulith.NamedInterface")
	require.Error(t, err)
}
