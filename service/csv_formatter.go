package service

import (
	"encoding/csv"
	"io"

	"github.com/archlens/modulith/domain"
	"github.com/archlens/modulith/internal/analyzer"
)

// CsvFormatter renders the inter-module dependency edges as CSV, a
// SUPPLEMENTED FEATURE for spreadsheet-based architecture review, grounded
// on the encoding/csv writer pattern the teacher reaches for whenever a
// tabular export is needed (service report exporters).
type CsvFormatter struct{}

// NewCsvFormatter builds a CSV exporter for `modulith verify --format csv`.
func NewCsvFormatter() *CsvFormatter { return &CsvFormatter{} }

// Format writes one row per inter-module edge plus a trailing violations block.
func (f *CsvFormatter) Format(w io.Writer, modules *analyzer.ApplicationModules, violations domain.Violations) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"source_module", "target_module", "source_type", "target_type", "kind", "description"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, e := range edgesFor(modules) {
		row := []string{e.SourceModule, e.TargetModule, e.SourceType, e.TargetType, string(e.Kind), e.Description}
		if err := cw.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV edge row", err)
		}
	}

	if violations.HasViolations() {
		if err := cw.Write([]string{}); err != nil {
			return domain.NewOutputError("failed to write CSV separator row", err)
		}
		if err := cw.Write([]string{"violation_kind", "violation_module", "violation_message"}); err != nil {
			return domain.NewOutputError("failed to write CSV violation header", err)
		}
		for _, v := range violations.Items() {
			if err := cw.Write([]string{string(v.Kind), v.Module, v.Message}); err != nil {
				return domain.NewOutputError("failed to write CSV violation row", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV output", err)
	}
	return nil
}
