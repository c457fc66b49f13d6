package domain

// DependencyKind mirrors internal/analyzer's edge-kind enum (spec.md §3
// DependencyEdge) for reporting purposes, so that output formatters never
// need to import the analyzer package.
type DependencyKind string

const (
	DependencyKindUsesComponent DependencyKind = "USES_COMPONENT"
	DependencyKindEventListener DependencyKind = "EVENT_LISTENER"
	DependencyKindEntity        DependencyKind = "ENTITY"
	DependencyKindDefault       DependencyKind = "DEFAULT"
)

// EdgeSummary is the rendered form of a DependencyEdge, used by the
// `--format dot` and `--format csv` exporters (SUPPLEMENTED FEATURES 1 and 5).
type EdgeSummary struct {
	SourceModule string
	TargetModule string
	SourceType   string
	TargetType   string
	Description  string
	Kind         DependencyKind
}

// AllowedDependencyToken is the textual `target[::interface]` form described
// in spec.md §4.6/§8 (round-trip: parse then format yields an equal token).
type AllowedDependencyToken string

// OpenToken is the sentinel declared-dependency value meaning "no restriction",
// replacing the original's emoticon sentinel per spec.md §9's redesign note.
const OpenToken AllowedDependencyToken = "*"

// WildcardInterface is the `::*` suffix meaning "any class of any explicit
// named interface of the target module" (the unnamed interface is not
// included).
const WildcardInterface = "*"
