package analyzer

import "sort"

// OrderIndex returns id's position in the container's topological order, or
// -1 if unknown.
func (am *ApplicationModules) OrderIndex(id ApplicationModuleIdentifier) int {
	for i, ordered := range am.orderedIdentifiers {
		if ordered == id {
			return i
		}
	}
	return -1
}

// ModuleComparator orders arbitrary objects by their containing module's
// position in the topological order (spec.md §4.7 "Comparator for objects").
// Unknown objects (no owning module) sort after known ones; objects in the
// same module fall back to an externally supplied tie-breaker, modeling the
// original's framework `@Order`-style secondary sort.
type ModuleComparator struct {
	modules    *ApplicationModules
	moduleOf   func(fqn string) (ApplicationModuleIdentifier, bool)
	tieBreaker func(a, b string) int // framework @Order-style; 0 if not provided
}

// NewModuleComparator builds a comparator over modules, with an optional
// tieBreaker for same-module pairs (pass nil for none).
func NewModuleComparator(modules *ApplicationModules, tieBreaker func(a, b string) int) *ModuleComparator {
	return &ModuleComparator{
		modules: modules,
		moduleOf: func(fqn string) (ApplicationModuleIdentifier, bool) {
			m := modules.ModuleContaining(fqn)
			if m == nil {
				return "", false
			}
			return m.Identifier(), true
		},
		tieBreaker: tieBreaker,
	}
}

// Compare returns -1/0/1 ordering fqnA before/equal/after fqnB.
func (c *ModuleComparator) Compare(fqnA, fqnB string) int {
	modA, okA := c.moduleOf(fqnA)
	modB, okB := c.moduleOf(fqnB)

	switch {
	case !okA && !okB:
		return defaultStringCompare(fqnA, fqnB)
	case !okA:
		return 1
	case !okB:
		return -1
	}

	idxA, idxB := c.modules.OrderIndex(modA), c.modules.OrderIndex(modB)
	if idxA != idxB {
		if idxA < idxB {
			return -1
		}
		return 1
	}

	if c.tieBreaker != nil {
		if result := c.tieBreaker(fqnA, fqnB); result != 0 {
			return result
		}
	}
	return defaultStringCompare(fqnA, fqnB)
}

// SortByModuleOrder sorts fqns in place according to Compare.
func (c *ModuleComparator) SortByModuleOrder(fqns []string) {
	sort.Slice(fqns, func(i, j int) bool { return c.Compare(fqns[i], fqns[j]) < 0 })
}

func defaultStringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
