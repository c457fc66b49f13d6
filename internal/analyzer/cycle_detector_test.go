package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceGraph_AddEdge_IgnoresSelfLoop(t *testing.T) {
	g := NewSliceGraph()
	g.AddEdge("a", "a")
	assert.False(t, NewCycleDetector(g).HasCycles())
}

func TestCycleDetector_NoCycle(t *testing.T) {
	g := NewSliceGraph()
	g.AddEdge("order", "inventory")
	g.AddEdge("inventory", "catalog")

	d := NewCycleDetector(g)
	assert.False(t, d.HasCycles())
	assert.Empty(t, d.Cycles())
}

func TestCycleDetector_DirectCycle(t *testing.T) {
	g := NewSliceGraph()
	g.AddEdge("order", "inventory")
	g.AddEdge("inventory", "order")

	cycles := NewCycleDetector(g).Cycles()
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []ApplicationModuleIdentifier{"inventory", "order"}, cycles[0])
}

func TestCycleDetector_IndirectCycle(t *testing.T) {
	g := NewSliceGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")
	g.AddNode("d") // isolated, unrelated module

	d := NewCycleDetector(g)
	assert.True(t, d.HasCycles())
	cycles := d.Cycles()
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []ApplicationModuleIdentifier{"a", "b", "c"}, cycles[0])
}

func TestCycleDetector_DisjointComponentsOnlyReportsRealCycles(t *testing.T) {
	g := NewSliceGraph()
	g.AddEdge("a", "b")
	g.AddEdge("x", "y")
	g.AddEdge("y", "x")

	cycles := NewCycleDetector(g).Cycles()
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []ApplicationModuleIdentifier{"x", "y"}, cycles[0])
}
