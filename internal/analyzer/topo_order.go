package analyzer

import "sort"

type color int

const (
	white color = iota
	grey
	black
)

// TopologicalOrderer implements spec.md §4.7 step 6: white/grey/black DFS
// over each module's direct dependencies; a grey-vertex re-encounter means a
// cycle, and the fallback is the identifier-sorted order. On completion,
// every module gets level = 1 + max(level of direct deps), 0 if none; the
// final order is by increasing level, then identifier (spec.md §5 stability).
type TopologicalOrderer struct {
	// directDeps maps a module identifier to the identifiers it directly depends on.
	directDeps map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier
	all        []ApplicationModuleIdentifier

	colors map[ApplicationModuleIdentifier]color
	levels map[ApplicationModuleIdentifier]int
}

// NewTopologicalOrderer builds an orderer over the given module set and its
// direct-dependency map.
func NewTopologicalOrderer(all []ApplicationModuleIdentifier, directDeps map[ApplicationModuleIdentifier][]ApplicationModuleIdentifier) *TopologicalOrderer {
	sorted := append([]ApplicationModuleIdentifier(nil), all...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &TopologicalOrderer{
		directDeps: directDeps,
		all:        sorted,
		colors:     map[ApplicationModuleIdentifier]color{},
		levels:     map[ApplicationModuleIdentifier]int{},
	}
}

// Order returns the deterministic module sequence (spec.md §4.7 step 6).
func (o *TopologicalOrderer) Order() []ApplicationModuleIdentifier {
	cyclic := false
	for _, id := range o.all {
		if o.colors[id] == white {
			if o.visit(id) {
				cyclic = true
			}
		}
	}

	if cyclic {
		fallback := append([]ApplicationModuleIdentifier(nil), o.all...)
		sort.Slice(fallback, func(i, j int) bool { return fallback[i] < fallback[j] })
		return fallback
	}

	ordered := append([]ApplicationModuleIdentifier(nil), o.all...)
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := o.levels[ordered[i]], o.levels[ordered[j]]
		if li != lj {
			return li < lj
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}

// visit returns true if a cycle (grey revisit) was encountered anywhere in
// this vertex's subtree.
func (o *TopologicalOrderer) visit(id ApplicationModuleIdentifier) bool {
	o.colors[id] = grey
	cyclic := false
	level := 0
	for _, dep := range o.directDeps[id] {
		switch o.colors[dep] {
		case white:
			if o.visit(dep) {
				cyclic = true
			}
		case grey:
			cyclic = true
			continue
		}
		if o.levels[dep]+1 > level {
			level = o.levels[dep] + 1
		}
	}
	o.levels[id] = level
	o.colors[id] = black
	return cyclic
}
