package classmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageName_IsSubPackageOf(t *testing.T) {
	tests := []struct {
		name     string
		pkg      string
		other    string
		expected bool
	}{
		{"strict descendant", "com.acme.order.internal", "com.acme.order", true},
		{"equal is not strict", "com.acme.order", "com.acme.order", false},
		{"sibling prefix collision", "com.acme.ordering", "com.acme.order", false},
		{"unrelated", "com.acme.inventory", "com.acme.order", false},
		{"ancestor vs descendant reversed", "com.acme", "com.acme.order", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPackageName(tt.pkg).IsSubPackageOf(NewPackageName(tt.other))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPackageName_TrailingName(t *testing.T) {
	trailing := NewPackageName("com.acme.order.internal").TrailingName(NewPackageName("com.acme.order"))
	assert.Equal(t, "internal", trailing)
}

func TestPackageName_Compare_ShorterPrefixSortsFirst(t *testing.T) {
	parent := NewPackageName("com.acme")
	child := NewPackageName("com.acme.order")
	assert.Equal(t, -1, parent.Compare(child))
	assert.Equal(t, 1, child.Compare(parent))
	assert.Equal(t, 0, parent.Compare(NewPackageName("com.acme")))
}

func TestPackageName_Parent(t *testing.T) {
	assert.Equal(t, "com.acme", NewPackageName("com.acme.order").Parent().String())
	root := NewPackageName("")
	assert.Equal(t, "", root.Parent().String())
}

func TestSortPackageNames_Deterministic(t *testing.T) {
	names := []PackageName{
		NewPackageName("com.acme.order"),
		NewPackageName("com.acme.inventory"),
		NewPackageName("com.acme"),
	}
	SortPackageNames(names)
	assert.Equal(t, []string{"com.acme", "com.acme.inventory", "com.acme.order"}, []string{
		names[0].String(), names[1].String(), names[2].String(),
	})
}
