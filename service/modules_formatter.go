package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/archlens/modulith/domain"
)

// ModulesFormatter renders a domain.ModulesOverview (spec.md §6's
// human-readable module description), grounded on the teacher's
// service/system_analysis_formatter.go section-by-section text rendering.
type ModulesFormatter struct {
	Color bool
}

// NewModulesFormatter builds a formatter for the `modulith modules` command.
func NewModulesFormatter(color bool) *ModulesFormatter {
	return &ModulesFormatter{Color: color}
}

// Format writes the rendered overview to w.
func (f *ModulesFormatter) Format(w io.Writer, overview domain.ModulesOverview, format domain.OutputFormat) error {
	switch format {
	case domain.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(overview); err != nil {
			return domain.NewOutputError("failed to encode JSON modules overview", err)
		}
		return nil
	case domain.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		if err := enc.Encode(overview); err != nil {
			return domain.NewOutputError("failed to encode YAML modules overview", err)
		}
		return nil
	case domain.OutputFormatText, "":
		return f.formatText(w, overview)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *ModulesFormatter) formatText(w io.Writer, overview domain.ModulesOverview) error {
	title := overview.SystemName
	if title == "" {
		title = "application modules"
	}
	fmt.Fprintf(w, "%s%s%s\n", f.colorize(ColorBold), title, f.colorize(ColorReset))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(title)))

	if len(overview.SharedModules) > 0 {
		fmt.Fprintf(w, "shared modules: %s\n\n", strings.Join(overview.SharedModules, ", "))
	}

	for _, mod := range overview.Modules {
		name := mod.Identifier
		if mod.DisplayName != "" {
			name = fmt.Sprintf("%s (%s)", mod.DisplayName, mod.Identifier)
		}
		openness := "closed"
		if mod.Open {
			openness = "open"
		}
		fmt.Fprintf(w, "- %s%s%s [%s] base package: %s\n", f.colorize(ColorBold), name, f.colorize(ColorReset), openness, mod.BasePackage)
		if mod.ParentIdentifier != "" {
			fmt.Fprintf(w, "    parent: %s\n", mod.ParentIdentifier)
		}
		if len(mod.ExcludedPackages) > 0 {
			fmt.Fprintf(w, "    excludes: %s\n", strings.Join(mod.ExcludedPackages, ", "))
		}
		if len(mod.NamedInterfaces) > 0 {
			var names []string
			for _, ni := range mod.NamedInterfaces {
				names = append(names, fmt.Sprintf("%s (%d types)", ni.Name, len(ni.ClassNames)))
			}
			fmt.Fprintf(w, "    named interfaces: %s\n", strings.Join(names, ", "))
		}
		if len(mod.DirectDependencies) > 0 {
			fmt.Fprintf(w, "    depends on: %s\n", strings.Join(mod.DirectDependencies, ", "))
		}
		if len(mod.ExposedBeans) > 0 {
			fmt.Fprintf(w, "    exposes: %s\n", strings.Join(mod.ExposedBeans, ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (f *ModulesFormatter) colorize(code string) string {
	if !f.Color {
		return ""
	}
	return code
}
