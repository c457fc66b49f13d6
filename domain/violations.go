package domain

import "strings"

// Violation is a single architectural rule failure with a human-readable message.
type Violation struct {
	// Message is the fully rendered, human-readable description of the failure.
	Message string

	// Kind classifies the violation for programmatic filtering (cycle, dependency,
	// non-exposed-type, sub-module, field-injection, external-rule).
	Kind ViolationKind

	// Module is the identifier of the module the violation was raised against, when applicable.
	Module string
}

// ViolationKind enumerates the categories of architectural violation from spec.md §7.
type ViolationKind string

const (
	ViolationKindDisallowedDependency ViolationKind = "disallowed-dependency"
	ViolationKindNonExposedType       ViolationKind = "non-exposed-type"
	ViolationKindInvalidSubModule     ViolationKind = "invalid-sub-module-reference"
	ViolationKindPackageCycle         ViolationKind = "package-cycle"
	ViolationKindFieldInjection       ViolationKind = "field-injection"
	ViolationKindExternalRule         ViolationKind = "external-rule"
)

func (v Violation) String() string { return v.Message }

// Violations is an immutable, composable collection of Violation values.
type Violations struct {
	items []Violation
}

// NewViolations builds a Violations value from the given items.
func NewViolations(items ...Violation) Violations {
	return Violations{items: append([]Violation(nil), items...)}
}

// And returns a new Violations containing the union of the receiver and other, in order.
func (v Violations) And(other Violations) Violations {
	if len(other.items) == 0 {
		return v
	}
	merged := make([]Violation, 0, len(v.items)+len(other.items))
	merged = append(merged, v.items...)
	merged = append(merged, other.items...)
	return Violations{items: merged}
}

// HasViolations reports whether any violation was recorded.
func (v Violations) HasViolations() bool { return len(v.items) > 0 }

// Count returns the number of recorded violations.
func (v Violations) Count() int { return len(v.items) }

// Items returns the recorded violations in deterministic order.
func (v Violations) Items() []Violation {
	return append([]Violation(nil), v.items...)
}

// Messages returns the rendered message of every violation, in order.
func (v Violations) Messages() []string {
	msgs := make([]string, len(v.items))
	for i, item := range v.items {
		msgs[i] = item.Message
	}
	return msgs
}

// ThrowIfPresent returns an ArchitectureViolationError wrapping the receiver if it has
// any violations, or nil otherwise.
func (v Violations) ThrowIfPresent() error {
	if !v.HasViolations() {
		return nil
	}
	return &ArchitectureViolationError{Violations: v}
}

// ArchitectureViolationError is returned by verify() when Violations is non-empty.
type ArchitectureViolationError struct {
	Violations Violations
}

func (e *ArchitectureViolationError) Error() string {
	return strings.Join(e.Violations.Messages(), "\n")
}
