package analyzer

import (
	"fmt"

	"github.com/archlens/modulith/domain"
)

// DetectViolations implements spec.md §4.7's `detectViolations`: one cycle
// detection run over the modules of all root packages together, external
// rules, and per-module dependency detection, unioned into a single
// Violations value.
func (am *ApplicationModules) DetectViolations() domain.Violations {
	var all domain.Violations

	for _, cycle := range am.Cycles() {
		all = all.And(domain.NewViolations(domain.Violation{
			Kind:    domain.ViolationKindPackageCycle,
			Message: formatCycle(cycle),
		}))
	}

	for _, rule := range am.rules {
		for _, msg := range rule.Evaluate(am.universe) {
			all = all.And(domain.NewViolations(domain.Violation{
				Kind:    domain.ViolationKindExternalRule,
				Message: msg,
			}))
		}
	}

	for _, mod := range am.Modules() {
		all = all.And(mod.DetectDependencies(am))
	}

	return all
}

func formatCycle(cycle []ApplicationModuleIdentifier) string {
	return fmt.Sprintf("Package cycle detected among modules: %v", cycle)
}

// Verify runs DetectViolations and returns an ArchitectureViolationError if
// non-empty; repeated calls after a successful (non-throwing) first call are
// no-ops, and a failing call re-evaluates on every invocation until it
// passes (spec.md §4.7, §8 "verify(); verify() produces the same outcome").
func (am *ApplicationModules) Verify() error {
	am.verifiedMu.Lock()
	defer am.verifiedMu.Unlock()
	if am.verified {
		return nil
	}
	violations := am.DetectViolations()
	if err := violations.ThrowIfPresent(); err != nil {
		return err
	}
	am.verified = true
	return nil
}
