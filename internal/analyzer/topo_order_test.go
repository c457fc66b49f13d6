package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopologicalOrderer_LevelsDependenciesFirst(t *testing.T) {
	all := []ApplicationModuleIdentifier{"order", "inventory", "catalog"}
	deps := map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier{
		"order":     {"inventory"},
		"inventory": {"catalog"},
	}

	order := NewTopologicalOrderer(all, deps).Order()
	assert.Equal(t, []ApplicationModuleIdentifier{"catalog", "inventory", "order"}, order)
}

func TestTopologicalOrderer_NoDependenciesSortsByIdentifier(t *testing.T) {
	all := []ApplicationModuleIdentifier{"zeta", "alpha", "mid"}
	order := NewTopologicalOrderer(all, nil).Order()
	assert.Equal(t, []ApplicationModuleIdentifier{"alpha", "mid", "zeta"}, order)
}

func TestTopologicalOrderer_CycleFallsBackToIdentifierOrder(t *testing.T) {
	all := []ApplicationModuleIdentifier{"b", "a"}
	deps := map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier{
		"a": {"b"},
		"b": {"a"},
	}
	order := NewTopologicalOrderer(all, deps).Order()
	assert.Equal(t, []ApplicationModuleIdentifier{"a", "b"}, order)
}

func TestTopologicalOrderer_DiamondSharesLevel(t *testing.T) {
	all := []ApplicationModuleIdentifier{"top", "left", "right", "bottom"}
	deps := map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier{
		"top":   {"left", "right"},
		"left":  {"bottom"},
		"right": {"bottom"},
	}
	order := NewTopologicalOrderer(all, deps).Order()
	assert.Equal(t, []ApplicationModuleIdentifier{"bottom", "left", "right", "top"}, order)
}
