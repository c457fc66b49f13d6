package classmodel

import "sort"

// Classes is an ordered set of Class descriptors, sorted by fully-qualified
// name (spec.md §3). Zero value is an empty set.
type Classes struct {
	byFQN map[string]Class
	order []string // sorted FQNs
}

// NewClasses builds a Classes set from an unordered slice, deduplicating by FQN.
func NewClasses(classes []Class) Classes {
	byFQN := make(map[string]Class, len(classes))
	for _, c := range classes {
		byFQN[c.FQN] = c
	}
	order := make([]string, 0, len(byFQN))
	for fqn := range byFQN {
		order = append(order, fqn)
	}
	sort.Strings(order)
	return Classes{byFQN: byFQN, order: order}
}

// Len returns the number of classes in the set.
func (c Classes) Len() int { return len(c.order) }

// All returns the classes in FQN-sorted order.
func (c Classes) All() []Class {
	out := make([]Class, len(c.order))
	for i, fqn := range c.order {
		out[i] = c.byFQN[fqn]
	}
	return out
}

// Get looks up a class by fully-qualified name.
func (c Classes) Get(fqn string) (Class, bool) {
	cl, ok := c.byFQN[fqn]
	return cl, ok
}

// Contains reports whether fqn is present in the set.
func (c Classes) Contains(fqn string) bool {
	_, ok := c.byFQN[fqn]
	return ok
}

// Filter returns the subset of classes matching predicate, preserving order.
func (c Classes) Filter(predicate func(Class) bool) Classes {
	var kept []Class
	for _, fqn := range c.order {
		cl := c.byFQN[fqn]
		if predicate(cl) {
			kept = append(kept, cl)
		}
	}
	return NewClasses(kept)
}

// ThatResideIn returns the subset of classes whose package equals pkg exactly
// (no descendants) — used by JavaPackage.toSingle (spec.md §4.1).
func (c Classes) ThatResideIn(pkg PackageName) Classes {
	return c.Filter(func(cl Class) bool { return cl.PackageName().Equal(pkg) })
}

// ThatResideUnder returns the subset of classes whose package equals pkg or is
// a (strict) sub-package of it.
func (c Classes) ThatResideUnder(pkg PackageName) Classes {
	return c.Filter(func(cl Class) bool {
		p := cl.PackageName()
		return p.Equal(pkg) || p.IsSubPackageOf(pkg)
	})
}

// Without returns the subset of classes not under any of the given exclusion
// packages (spec.md §4.1 `without(exclusions)`, applied at the Classes level).
func (c Classes) Without(exclusions []PackageName) Classes {
	return c.Filter(func(cl Class) bool {
		p := cl.PackageName()
		for _, excl := range exclusions {
			if p.Equal(excl) || p.IsSubPackageOf(excl) {
				return false
			}
		}
		return true
	})
}
