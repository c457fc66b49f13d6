package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
)

func namedInterfacesFixture(t *testing.T, names ...string) NamedInterfaces {
	t.Helper()
	items := map[string]NamedInterface{
		domain.UnnamedInterfaceName: {Name: domain.UnnamedInterfaceName, Classes: classmodel.NewClasses(nil)},
	}
	for _, n := range names {
		items[n] = NamedInterface{Name: n, Classes: classmodel.NewClasses([]classmodel.Class{
			{FQN: "com.acme." + n + ".Api"},
		})}
	}
	return newNamedInterfaces(items)
}

func TestAllowedDependency_String(t *testing.T) {
	tests := []struct {
		name string
		dep  AllowedDependency
		want string
	}{
		{"no interface", AllowedDependency{TargetModule: "inventory"}, "inventory"},
		{"wildcard", AllowedDependency{TargetModule: "inventory", Interface: domain.WildcardInterface}, "inventory :: *"},
		{"named", AllowedDependency{TargetModule: "inventory", Interface: "spi"}, "inventory::spi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dep.String())
		})
	}
}

func TestParseAllowedDependency(t *testing.T) {
	modules := map[string]NamedInterfaces{
		"inventory": namedInterfacesFixture(t, "spi"),
	}

	t.Run("bare module", func(t *testing.T) {
		dep, err := ParseAllowedDependency("inventory", modules)
		require.NoError(t, err)
		assert.Equal(t, AllowedDependency{TargetModule: "inventory"}, dep)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		dep, err := ParseAllowedDependency("  inventory  ", modules)
		require.NoError(t, err)
		assert.Equal(t, "inventory", dep.TargetModule)
	})

	t.Run("wildcard interface", func(t *testing.T) {
		dep, err := ParseAllowedDependency("inventory::*", modules)
		require.NoError(t, err)
		assert.Equal(t, AllowedDependency{TargetModule: "inventory", Interface: domain.WildcardInterface}, dep)
	})

	t.Run("named interface", func(t *testing.T) {
		dep, err := ParseAllowedDependency("inventory::spi", modules)
		require.NoError(t, err)
		assert.Equal(t, AllowedDependency{TargetModule: "inventory", Interface: "spi"}, dep)
	})

	t.Run("unknown module", func(t *testing.T) {
		_, err := ParseAllowedDependency("catalog", modules)
		require.Error(t, err)
		var domErr domain.DomainError
		require.ErrorAs(t, err, &domErr)
		assert.Equal(t, domain.ErrCodeUnknownModule, domErr.Code)
	})

	t.Run("unknown named interface", func(t *testing.T) {
		_, err := ParseAllowedDependency("inventory::missing", modules)
		require.Error(t, err)
		var domErr domain.DomainError
		require.ErrorAs(t, err, &domErr)
		assert.Equal(t, domain.ErrCodeUnknownNamedInterface, domErr.Code)
	})
}

func TestAllowedDependencies_OpenAlwaysMatches(t *testing.T) {
	open := OpenAllowedDependencies()
	assert.True(t, open.IsOpen())
	assert.True(t, open.matchesExplicit("inventory", "com.acme.inventory.Api", NamedInterfaces{}))
	assert.Equal(t, "*", open.AllowedTargetsDescription())
}

func TestAllowedDependencies_ClosedEmptyIsDenyAll(t *testing.T) {
	closed := ClosedAllowedDependencies(nil)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, "(none)", closed.AllowedTargetsDescription())
	assert.False(t, closed.matchesExplicit("inventory", "com.acme.inventory.Api", namedInterfacesFixture(t, "spi")))
}

func TestAllowedDependencies_MatchesExplicit(t *testing.T) {
	targetNIs := namedInterfacesFixture(t, "spi")
	closed := ClosedAllowedDependencies([]AllowedDependency{{TargetModule: "inventory", Interface: "spi"}})

	assert.True(t, closed.matchesExplicit("inventory", "com.acme.spi.Api", targetNIs))
	assert.False(t, closed.matchesExplicit("inventory", "com.acme.other.Type", targetNIs))
	assert.False(t, closed.matchesExplicit("catalog", "com.acme.spi.Api", targetNIs))
}

func TestAllowedDependencies_WildcardMatchesAnyExplicitInterface(t *testing.T) {
	targetNIs := namedInterfacesFixture(t, "spi", "events")
	closed := ClosedAllowedDependencies([]AllowedDependency{{TargetModule: "inventory", Interface: domain.WildcardInterface}})

	assert.True(t, closed.matchesExplicit("inventory", "com.acme.spi.Api", targetNIs))
	assert.True(t, closed.matchesExplicit("inventory", "com.acme.events.Api", targetNIs))
}

func TestAllowedDependencies_WithSharedModulesAppendsUnnamedAllowance(t *testing.T) {
	closed := ClosedAllowedDependencies(nil)
	withShared := closed.withSharedModules([]string{"common"})

	assert.False(t, withShared.IsOpen())
	require.Len(t, withShared.Items(), 1)
	assert.Equal(t, "common", withShared.Items()[0].TargetModule)
}

func TestAllowedDependencies_WithSharedModulesNoOpOnOpen(t *testing.T) {
	open := OpenAllowedDependencies()
	assert.True(t, open.withSharedModules([]string{"common"}).IsOpen())
}

func TestAllowedDependencies_UndeclaredNeverMatchesExplicitlyNorOpen(t *testing.T) {
	undeclared := UndeclaredAllowedDependencies()
	assert.False(t, undeclared.IsOpen())
	assert.False(t, undeclared.isDeclaredClosed())
	assert.False(t, undeclared.matchesExplicit("inventory", "com.acme.inventory.Api", namedInterfacesFixture(t, "spi")))
	assert.Equal(t, "(none)", undeclared.AllowedTargetsDescription())
}

func TestAllowedDependencies_UndeclaredDiffersFromClosedEmpty(t *testing.T) {
	closed := ClosedAllowedDependencies(nil)
	assert.True(t, closed.isDeclaredClosed())

	undeclared := UndeclaredAllowedDependencies()
	assert.False(t, undeclared.isDeclaredClosed())
}

func TestAllowedDependencies_WithSharedModulesPreservesUndeclaredKind(t *testing.T) {
	undeclared := UndeclaredAllowedDependencies()
	withShared := undeclared.withSharedModules([]string{"common"})
	assert.False(t, withShared.isDeclaredClosed())

	sharedUtilFQN := "com.acme.common.SharedUtil"
	targetNIs := newNamedInterfaces(map[string]NamedInterface{
		domain.UnnamedInterfaceName: {
			Name:    domain.UnnamedInterfaceName,
			Classes: classmodel.NewClasses([]classmodel.Class{{FQN: sharedUtilFQN}}),
		},
	})
	assert.True(t, withShared.matchesExplicit("common", sharedUtilFQN, targetNIs))
}

func TestAllowedDependencies_AllowedTargetsDescriptionJoinsTargets(t *testing.T) {
	closed := ClosedAllowedDependencies([]AllowedDependency{
		{TargetModule: "inventory"},
		{TargetModule: "catalog", Interface: "spi"},
	})
	assert.Equal(t, "inventory, catalog", closed.AllowedTargetsDescription())
}
