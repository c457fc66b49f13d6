package classmodel

import (
	"context"
	"sort"
)

// LiteralImporter is an in-memory ClassImporter/PackageAnnotationSource built
// from literal Class values, used by tests and, through FileImporter, to
// serve class graphs loaded from JSON, rather than shipping a second real
// byte-code parser (no component in this domain parses source text; see
// DESIGN.md).
type LiteralImporter struct {
	classes    []Class
	descriptors map[string]string // package -> FQN of its descriptor class, if any
}

// NewLiteralImporter builds a LiteralImporter from literal classes.
func NewLiteralImporter(classes ...Class) *LiteralImporter {
	return &LiteralImporter{classes: classes, descriptors: map[string]string{}}
}

// WithPackageDescriptor registers classFQN as the descriptor type of pkg,
// the carrier of package-level annotations such as NamedInterface markers.
func (l *LiteralImporter) WithPackageDescriptor(pkg, classFQN string) *LiteralImporter {
	l.descriptors[pkg] = classFQN
	return l
}

func (l *LiteralImporter) Import(_ context.Context, rootPackages []string) (Classes, error) {
	all := NewClasses(l.classes)
	if len(rootPackages) == 0 {
		return all, nil
	}
	roots := make([]PackageName, len(rootPackages))
	for i, r := range rootPackages {
		roots[i] = NewPackageName(r)
	}
	return all.Filter(func(c Class) bool {
		pkg := c.PackageName()
		for _, root := range roots {
			if pkg.Equal(root) || pkg.IsSubPackageOf(root) {
				return true
			}
		}
		return false
	}), nil
}

func (l *LiteralImporter) PackageAnnotation(pkg string, annotationFQN string) (Annotation, bool) {
	descFQN, ok := l.descriptors[pkg]
	if !ok {
		return Annotation{}, false
	}
	for _, c := range l.classes {
		if c.FQN != descFQN {
			continue
		}
		for _, a := range c.Annotations {
			if a.FQN == annotationFQN {
				return a, true
			}
		}
	}
	return Annotation{}, false
}

func (l *LiteralImporter) IsPackageDescriptor(classFQN string) bool {
	for _, descFQN := range l.descriptors {
		if descFQN == classFQN {
			return true
		}
	}
	return false
}

// IsPackageLevelStereotypeCarrier treats every class as eligible; the
// AmbiguousAnnotation check in JavaPackage.FindAnnotation is what actually
// enforces "at most one type declares it" (spec.md §4.1).
func (l *LiteralImporter) IsPackageLevelStereotypeCarrier(classFQN string) bool {
	return true
}

// SortedPackages returns the distinct packages present across all literal
// classes, sorted.
func (l *LiteralImporter) SortedPackages() []string {
	seen := map[string]struct{}{}
	for _, c := range l.classes {
		seen[c.Package] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
