package classmodel

import (
	"context"
	"encoding/json"
	"os"

	"github.com/archlens/modulith/domain"
)

// classGraphDocument is the on-disk shape consumed by FileImporter: a class
// graph previously extracted from compiled bytecode by an external tool
// (out of scope per spec.md §6's "byte-code importer" external
// collaborator) and handed to modulith as a single JSON document.
type classGraphDocument struct {
	Classes             []Class           `json:"classes"`
	PackageDescriptors  map[string]string `json:"packageDescriptors"`
}

// FileImporter reads a class graph from a JSON file on disk and delegates to
// LiteralImporter, grounded on the teacher's config loaders that read a
// whole document into a typed struct in one step (internal/config/config.go).
type FileImporter struct {
	path string
}

// NewFileImporter builds an importer bound to a class-graph JSON file path.
func NewFileImporter(path string) *FileImporter {
	return &FileImporter{path: path}
}

func (f *FileImporter) load() (*LiteralImporter, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to read class graph file "+f.path, err)
	}
	var doc classGraphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewInvalidInputError("failed to parse class graph file "+f.path, err)
	}
	importer := NewLiteralImporter(doc.Classes...)
	for pkg, descFQN := range doc.PackageDescriptors {
		importer = importer.WithPackageDescriptor(pkg, descFQN)
	}
	return importer, nil
}

func (f *FileImporter) Import(ctx context.Context, rootPackages []string) (Classes, error) {
	importer, err := f.load()
	if err != nil {
		return Classes{}, err
	}
	return importer.Import(ctx, rootPackages)
}

func (f *FileImporter) PackageAnnotation(pkg string, annotationFQN string) (Annotation, bool) {
	importer, err := f.load()
	if err != nil {
		return Annotation{}, false
	}
	return importer.PackageAnnotation(pkg, annotationFQN)
}

func (f *FileImporter) IsPackageDescriptor(classFQN string) bool {
	importer, err := f.load()
	if err != nil {
		return false
	}
	return importer.IsPackageDescriptor(classFQN)
}

func (f *FileImporter) IsPackageLevelStereotypeCarrier(classFQN string) bool {
	return true
}
