package classmodel

import "context"

// ClassImporter is the external collaborator (spec.md §6) that provides the
// set of classes reachable from given root packages. This core never loads
// byte-code itself; it only consumes whatever an importer has already built.
type ClassImporter interface {
	// Import returns every class reachable from the given root packages.
	Import(ctx context.Context, rootPackages []string) (Classes, error)
}

// PackageAnnotationSource looks up annotations declared on a package's
// descriptor type, and answers which classes act as package descriptors or
// package-level stereotype carriers (spec.md §6 "package annotation source").
type PackageAnnotationSource interface {
	// PackageAnnotation returns the first annotation of the given FQN declared
	// on the descriptor type of the named package, if any.
	PackageAnnotation(pkg string, annotationFQN string) (Annotation, bool)
	// IsPackageDescriptor reports whether classFQN is the package-info-style
	// descriptor type of its own package (excluded from ExposedClasses).
	IsPackageDescriptor(classFQN string) bool
	// IsPackageLevelStereotypeCarrier reports whether classFQN is eligible to
	// carry a package-level stereotype marker (spec.md §4.1 `findAnnotation`).
	IsPackageLevelStereotypeCarrier(classFQN string) bool
}
