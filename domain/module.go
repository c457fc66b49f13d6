package domain

// NamedInterfaceSummary is the rendered form of a NamedInterface used for
// reporting and the human-readable module description block (spec.md §6).
type NamedInterfaceSummary struct {
	Name       string
	ClassNames []string
}

// ModuleSummary is the human-readable projection of an ApplicationModule
// (internal/analyzer) used by service/ formatters and cmd/ output. It
// intentionally carries only rendered strings, not live analyzer types, so
// that domain never imports internal/analyzer.
type ModuleSummary struct {
	Identifier             string
	DisplayName            string
	BasePackage             string
	Open                   bool
	ParentIdentifier        string
	ExcludedPackages        []string
	NamedInterfaces        []NamedInterfaceSummary
	DirectDependencies      []string
	BootstrapDependencies   []string
	InternalBeans           []string
	ExposedBeans            []string
}

// ModulesOverview is the full, ordered description of a detected
// ApplicationModules container, as produced by the `modules` use case.
type ModulesOverview struct {
	SystemName  string
	RootPackages []string
	SharedModules []string
	Modules     []ModuleSummary
}
