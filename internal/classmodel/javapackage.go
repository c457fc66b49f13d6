package classmodel

import (
	"sync"

	"github.com/archlens/modulith/domain"
)

// JavaPackage is a PackageName plus the classes located within it and,
// optionally, its sub-packages (spec.md §3). Lazy views (directSubPackages,
// subPackages, exposedClasses) are memoized once via sync.Once, per spec.md
// §9's "arena-allocated... compute-once slots" note; annotation lookups are
// recomputed on every call.
type JavaPackage struct {
	name    PackageName
	classes Classes // every class at or under name
	source  PackageAnnotationSource

	subPkgsOnce sync.Once
	subPkgs     []PackageName

	directOnce sync.Once
	direct     []PackageName

	exposedOnce sync.Once
	exposed     Classes
}

// Of materializes a package named by name, including all classes found in
// universe at or below that name (spec.md §4.1 `of(classes, name)`).
func Of(universe Classes, name PackageName, source PackageAnnotationSource) *JavaPackage {
	return &JavaPackage{
		name:    name,
		classes: universe.ThatResideUnder(name),
		source:  source,
	}
}

// Name returns the package's dotted identifier.
func (p *JavaPackage) Name() PackageName { return p.name }

// ToSingle projects this package to one containing only classes whose own
// package name equals this one, excluding descendants (spec.md §4.1).
func (p *JavaPackage) ToSingle() *JavaPackage {
	return &JavaPackage{
		name:    p.name,
		classes: p.classes.ThatResideIn(p.name),
		source:  p.source,
	}
}

// Without returns a package with descendant exclusions removed, used to carve
// nested modules out of a parent's package (spec.md §4.1 `without`).
func (p *JavaPackage) Without(exclusions []PackageName) *JavaPackage {
	return &JavaPackage{
		name:    p.name,
		classes: p.classes.Without(exclusions),
		source:  p.source,
	}
}

// AllClasses returns every class at or under this package (after any prior
// Without/ToSingle projection).
func (p *JavaPackage) AllClasses() Classes { return p.classes }

// DirectSubPackages returns the distinct package names exactly one level
// below this package, sorted by PackageName (spec.md §4.1).
func (p *JavaPackage) DirectSubPackages() []PackageName {
	p.directOnce.Do(func() {
		seen := map[string]PackageName{}
		for _, cl := range p.classes.All() {
			pkg := cl.PackageName()
			if !pkg.IsSubPackageOf(p.name) {
				continue
			}
			trailing := pkg.TrailingName(p.name)
			firstSeg := trailing
			for i, r := range trailing {
				if r == '.' {
					firstSeg = trailing[:i]
					break
				}
			}
			direct := NewPackageName(joinDotted(p.name.String(), firstSeg))
			seen[direct.String()] = direct
		}
		out := make([]PackageName, 0, len(seen))
		for _, v := range seen {
			out = append(out, v)
		}
		SortPackageNames(out)
		p.direct = out
	})
	return append([]PackageName(nil), p.direct...)
}

// SubPackages returns every distinct descendant package name, sorted.
func (p *JavaPackage) SubPackages() []PackageName {
	p.subPkgsOnce.Do(func() {
		seen := map[string]PackageName{}
		for _, cl := range p.classes.All() {
			pkg := cl.PackageName()
			if pkg.IsSubPackageOf(p.name) {
				seen[pkg.String()] = pkg
			}
		}
		out := make([]PackageName, 0, len(seen))
		for _, v := range seen {
			out = append(out, v)
		}
		SortPackageNames(out)
		p.subPkgs = out
	})
	return append([]PackageName(nil), p.subPkgs...)
}

// ExposedClasses returns the public classes directly in this package,
// excluding the package-descriptor type itself (spec.md §3 JavaPackage).
func (p *JavaPackage) ExposedClasses() Classes {
	p.exposedOnce.Do(func() {
		p.exposed = p.classes.ThatResideIn(p.name).Filter(func(c Class) bool {
			return c.Public && !p.source.IsPackageDescriptor(c.FQN)
		})
	})
	return p.exposed
}

// FindAnnotation returns the annotation from this package's descriptor, or
// from any type within the immediate package carrying a package-level
// stereotype marker, matching fqn. Returns domain.ErrCodeAmbiguousAnnotation
// if more than one type declares it (spec.md §4.1).
func (p *JavaPackage) FindAnnotation(fqn string) (Annotation, bool, error) {
	if ann, ok := p.source.PackageAnnotation(p.name.String(), fqn); ok {
		return ann, true, nil
	}
	var found []Annotation
	for _, c := range p.classes.ThatResideIn(p.name).All() {
		if !p.source.IsPackageLevelStereotypeCarrier(c.FQN) {
			continue
		}
		for _, a := range c.Annotations {
			if a.FQN == fqn {
				found = append(found, a)
			}
		}
	}
	switch len(found) {
	case 0:
		return Annotation{}, false, nil
	case 1:
		return found[0], true, nil
	default:
		return Annotation{}, false, domain.NewAmbiguousAnnotationError(p.name.String(), fqn)
	}
}

// GetSubPackagesAnnotatedWith returns the sub-packages (of any depth) whose
// descriptor type carries annotation fqn, directly or meta-annotated
// (spec.md §4.1 `getSubPackagesAnnotatedWith`).
func (p *JavaPackage) GetSubPackagesAnnotatedWith(fqn string) []PackageName {
	var out []PackageName
	for _, sub := range p.SubPackages() {
		if _, ok := p.source.PackageAnnotation(sub.String(), fqn); ok {
			out = append(out, sub)
		}
	}
	SortPackageNames(out)
	return out
}

func joinDotted(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}
