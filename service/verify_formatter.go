package service

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/archlens/modulith/domain"
)

// Standard formatting constants, grounded on the teacher's service/format_utils.go.
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorBold   = "\x1b[1m"
)

// verifyReport is the serialization shape shared by the JSON/YAML renderers.
type verifyReport struct {
	ModuleCount int                `json:"moduleCount" yaml:"moduleCount"`
	Passed      bool               `json:"passed" yaml:"passed"`
	Violations  []violationReport  `json:"violations" yaml:"violations"`
}

type violationReport struct {
	Kind    domain.ViolationKind `json:"kind" yaml:"kind"`
	Module  string               `json:"module,omitempty" yaml:"module,omitempty"`
	Message string               `json:"message" yaml:"message"`
}

func toVerifyReport(moduleCount int, violations domain.Violations) verifyReport {
	report := verifyReport{ModuleCount: moduleCount, Passed: !violations.HasViolations()}
	for _, v := range violations.Items() {
		report.Violations = append(report.Violations, violationReport{Kind: v.Kind, Module: v.Module, Message: v.Message})
	}
	return report
}

// VerifyFormatter renders a verification result in one of domain.OutputFormat's shapes.
type VerifyFormatter struct {
	Color bool
}

// NewVerifyFormatter builds a formatter, grounded on the teacher's
// service/*_formatter.go Format(result, format) entrypoints.
func NewVerifyFormatter(color bool) *VerifyFormatter {
	return &VerifyFormatter{Color: color}
}

// Format writes the rendered report to w.
func (f *VerifyFormatter) Format(w io.Writer, moduleCount int, violations domain.Violations, format domain.OutputFormat) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.formatJSON(w, moduleCount, violations)
	case domain.OutputFormatYAML:
		return f.formatYAML(w, moduleCount, violations)
	case domain.OutputFormatText, "":
		return f.formatText(w, moduleCount, violations)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *VerifyFormatter) formatJSON(w io.Writer, moduleCount int, violations domain.Violations) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toVerifyReport(moduleCount, violations)); err != nil {
		return domain.NewOutputError("failed to encode JSON verify report", err)
	}
	return nil
}

func (f *VerifyFormatter) formatYAML(w io.Writer, moduleCount int, violations domain.Violations) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(toVerifyReport(moduleCount, violations)); err != nil {
		return domain.NewOutputError("failed to encode YAML verify report", err)
	}
	return nil
}

func (f *VerifyFormatter) formatText(w io.Writer, moduleCount int, violations domain.Violations) error {
	if !violations.HasViolations() {
		fmt.Fprintf(w, "%s%d modules verified, no violations found%s\n", f.colorize(ColorGreen), moduleCount, f.colorize(ColorReset))
		return nil
	}
	fmt.Fprintf(w, "%s%d modules verified, %d violation(s) found%s\n\n",
		f.colorize(ColorRed), moduleCount, violations.Count(), f.colorize(ColorReset))
	for i, v := range violations.Items() {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, v.Kind, v.Message)
	}
	return nil
}

func (f *VerifyFormatter) colorize(code string) string {
	if !f.Color {
		return ""
	}
	return code
}

// GroupViolationsByKind counts violations per kind for report summaries, a
// small supplement not in spec.md's strict output shapes.
func GroupViolationsByKind(violations domain.Violations) map[domain.ViolationKind]int {
	counts := map[domain.ViolationKind]int{}
	for _, v := range violations.Items() {
		counts[v.Kind]++
	}
	return counts
}
