// Package mcp exposes the verifier as a set of Model Context Protocol tools
// (SUPPLEMENTED FEATURE), grounded on the teacher's mcp/dependencies.go and
// mcp/handlers.go.
package mcp

import (
	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/classmodel"
	"github.com/archlens/modulith/internal/config"
)

// Dependencies aggregates the shared collaborators required by MCP handlers.
type Dependencies struct {
	config     *config.Config
	configPath string
	catalog    domain.StereotypeCatalog
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{config: cfg, configPath: configPath, catalog: domain.DefaultStereotypeCatalog()}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config { return d.config }

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string { return d.configPath }

// Catalog exposes the stereotype catalog shared by every tool invocation.
func (d *Dependencies) Catalog() domain.StereotypeCatalog { return d.catalog }

// Importer builds a fresh file-backed class importer for the given class graph path.
func (d *Dependencies) Importer(classGraphPath string) *classmodel.FileImporter {
	return classmodel.NewFileImporter(classGraphPath)
}
