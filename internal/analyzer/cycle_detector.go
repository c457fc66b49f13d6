package analyzer

import "sort"

// SliceGraph is the adjacency-list graph of module identifiers used for
// cycle detection (spec.md §4.7): a slice is the identifier of the module
// each class belongs to, and edges connect slices that have at least one
// class-level dependency between them.
type SliceGraph struct {
	edges map[ApplicationModuleIdentifier]map[ApplicationModuleIdentifier]struct{}
}

// NewSliceGraph builds an empty slice graph.
func NewSliceGraph() *SliceGraph {
	return &SliceGraph{edges: map[ApplicationModuleIdentifier]map[ApplicationModuleIdentifier]struct{}{}}
}

// AddNode ensures id participates in the graph even with no edges.
func (g *SliceGraph) AddNode(id ApplicationModuleIdentifier) {
	if _, ok := g.edges[id]; !ok {
		g.edges[id] = map[ApplicationModuleIdentifier]struct{}{}
	}
}

// AddEdge records a dependency from -> to.
func (g *SliceGraph) AddEdge(from, to ApplicationModuleIdentifier) {
	g.AddNode(from)
	g.AddNode(to)
	if from == to {
		return
	}
	g.edges[from][to] = struct{}{}
}

func (g *SliceGraph) neighbors(id ApplicationModuleIdentifier) []ApplicationModuleIdentifier {
	out := make([]ApplicationModuleIdentifier, 0, len(g.edges[id]))
	for n := range g.edges[id] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CycleDetector implements Tarjan's strongly-connected-components algorithm
// over a SliceGraph (spec.md §4.7, §9), a direct generalization of
// circular_detector.go's per-file module graph to the module-identifier
// level used here.
type CycleDetector struct {
	graph *SliceGraph

	index    int
	stack    []ApplicationModuleIdentifier
	onStack  map[ApplicationModuleIdentifier]bool
	indices  map[ApplicationModuleIdentifier]int
	lowLinks map[ApplicationModuleIdentifier]int

	components [][]ApplicationModuleIdentifier
}

// NewCycleDetector builds a detector bound to graph.
func NewCycleDetector(graph *SliceGraph) *CycleDetector {
	return &CycleDetector{
		graph:    graph,
		onStack:  map[ApplicationModuleIdentifier]bool{},
		indices:  map[ApplicationModuleIdentifier]int{},
		lowLinks: map[ApplicationModuleIdentifier]int{},
	}
}

// Cycles returns every strongly-connected component of size > 1 — i.e. every
// real cycle (spec.md §4.7: "a cycle is any SCC of size > 1").
func (d *CycleDetector) Cycles() [][]ApplicationModuleIdentifier {
	nodes := make([]ApplicationModuleIdentifier, 0, len(d.graph.edges))
	for n := range d.graph.edges {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, n := range nodes {
		if _, visited := d.indices[n]; !visited {
			d.strongConnect(n)
		}
	}

	var cycles [][]ApplicationModuleIdentifier
	for _, comp := range d.components {
		if len(comp) > 1 {
			sorted := append([]ApplicationModuleIdentifier(nil), comp...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
			cycles = append(cycles, sorted)
		}
	}
	return cycles
}

// HasCycles reports whether any SCC of size > 1 exists.
func (d *CycleDetector) HasCycles() bool {
	return len(d.Cycles()) > 0
}

func (d *CycleDetector) strongConnect(v ApplicationModuleIdentifier) {
	d.indices[v] = d.index
	d.lowLinks[v] = d.index
	d.index++
	d.stack = append(d.stack, v)
	d.onStack[v] = true

	for _, w := range d.graph.neighbors(v) {
		if _, visited := d.indices[w]; !visited {
			d.strongConnect(w)
			if d.lowLinks[w] < d.lowLinks[v] {
				d.lowLinks[v] = d.lowLinks[w]
			}
		} else if d.onStack[w] {
			if d.indices[w] < d.lowLinks[v] {
				d.lowLinks[v] = d.indices[w]
			}
		}
	}

	if d.lowLinks[v] == d.indices[v] {
		var component []ApplicationModuleIdentifier
		for {
			n := len(d.stack) - 1
			w := d.stack[n]
			d.stack = d.stack[:n]
			d.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		d.components = append(d.components, component)
	}
}
