package domain

import "io"

// OutputFormat selects how a use-case result is rendered by service/ formatters.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
	OutputFormatCSV  OutputFormat = "csv"
)

// ReportWriter abstracts writing a rendered report to a destination (file or
// writer), mirroring the teacher's domain.ReportWriter. Implementations live
// in service/.
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// VerifyRequest is the input to the verify use case (app.VerifyUseCase).
type VerifyRequest struct {
	// RootPackages lists the fully-qualified root package(s) to analyze.
	RootPackages []string
	// ConfigPath overrides the default `.modulith.toml` discovery path.
	ConfigPath string
	// Strategy overrides the configured detection strategy name, when non-empty.
	Strategy     string
	Format       OutputFormat
	OutputPath   string
	OutputWriter io.Writer
}

// VerifyResponse is the output of the verify use case.
type VerifyResponse struct {
	Violations  Violations
	ModuleCount int
	Modules     []ModuleSummary
	Edges       []EdgeSummary
}

// ModulesRequest is the input to the modules (describe) use case.
type ModulesRequest struct {
	RootPackages []string
	ConfigPath   string
	Strategy     string
	Format       OutputFormat
	// ModuleFilter, when non-empty, restricts output to a single module identifier.
	ModuleFilter string
	OutputPath   string
	OutputWriter io.Writer
}

// ModulesResponse is the output of the modules use case.
type ModulesResponse struct {
	Overview ModulesOverview
}
