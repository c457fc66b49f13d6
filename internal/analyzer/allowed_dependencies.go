package analyzer

import (
	"fmt"
	"strings"

	"github.com/archlens/modulith/domain"
)

// AllowedDependency is `{targetModule, namedInterface?}` (spec.md §3). An
// empty Interface means the target module's unnamed interface;
// domain.WildcardInterface means any of its explicit named interfaces.
type AllowedDependency struct {
	TargetModule string
	Interface    string // "" = unnamed, domain.WildcardInterface = any interface
}

// String renders the round-trippable `target[::interface]` form (spec.md §8):
// no interface serializes to "m", wildcard to "m :: *".
func (a AllowedDependency) String() string {
	switch a.Interface {
	case "":
		return a.TargetModule
	case domain.WildcardInterface:
		return a.TargetModule + " :: *"
	default:
		return a.TargetModule + "::" + a.Interface
	}
}

// ParseAllowedDependency parses a `target[::interface]` token (spec.md §4.6).
// modules maps each known module identifier to its named interfaces and is
// used to fail fast on unknown module or interface references.
func ParseAllowedDependency(token string, modules map[string]NamedInterfaces) (AllowedDependency, error) {
	token = strings.TrimSpace(token)
	parts := strings.SplitN(token, "::", 2)
	target := strings.TrimSpace(parts[0])

	nis, ok := modules[target]
	if !ok {
		return AllowedDependency{}, domain.NewUnknownModuleError(target)
	}

	if len(parts) == 1 {
		return AllowedDependency{TargetModule: target}, nil
	}

	iface := strings.TrimSpace(parts[1])
	if iface == domain.WildcardInterface {
		return AllowedDependency{TargetModule: target, Interface: domain.WildcardInterface}, nil
	}
	if _, ok := nis.Get(iface); !ok {
		return AllowedDependency{}, domain.NewUnknownNamedInterfaceError(target, iface)
	}
	return AllowedDependency{TargetModule: target, Interface: iface}, nil
}

// allowedKind distinguishes the three declaration states a module's
// allowed-dependency set can be in (spec.md §4.6): a module explicitly
// marked open, a module with an explicit (possibly empty) enumerated list,
// and a module that carries no application-module marker at all. The third
// state must NOT be folded into either of the first two: it short-circuits
// neither the explicit match nor the final "not in the declared list"
// rejection, but still runs the exposure and parent/child fallback checks.
type allowedKind int

const (
	allowedKindOpen allowedKind = iota
	allowedKindUndeclared
	allowedKindClosed
)

// AllowedDependencies is open (no restriction), explicitly closed (an
// enumerated, possibly empty, list), or undeclared (no application-module
// marker was found at all) — spec.md §3, replacing the original's emoticon
// sentinel with an explicit tagged variant per spec.md §9.
type AllowedDependencies struct {
	kind  allowedKind
	items []AllowedDependency
}

// OpenAllowedDependencies returns the "any dependency permitted" variant.
func OpenAllowedDependencies() AllowedDependencies {
	return AllowedDependencies{kind: allowedKindOpen}
}

// ClosedAllowedDependencies returns a closed, enumerated variant. An empty
// items slice means deny-all (spec.md §8 boundary behaviour).
func ClosedAllowedDependencies(items []AllowedDependency) AllowedDependencies {
	return AllowedDependencies{kind: allowedKindClosed, items: append([]AllowedDependency(nil), items...)}
}

// UndeclaredAllowedDependencies returns the variant for a module with no
// application-module marker annotation at all. Unlike the open variant it
// does not short-circuit ValidateEdge: exposure and parent/child structural
// checks still run. Unlike the closed variant, failing to match an entry in
// (the empty) items never by itself produces a disallowed-dependency
// violation, since there is no declared list to have violated.
func UndeclaredAllowedDependencies() AllowedDependencies {
	return AllowedDependencies{kind: allowedKindUndeclared}
}

// IsOpen reports whether this value is the open (any) variant.
func (a AllowedDependencies) IsOpen() bool { return a.kind == allowedKindOpen }

// isDeclaredClosed reports whether this value carries an explicit,
// declared allow-list, as opposed to being open or merely undeclared.
func (a AllowedDependencies) isDeclaredClosed() bool { return a.kind == allowedKindClosed }

// Items returns the enumerated dependencies of a closed value (nil for open
// or undeclared).
func (a AllowedDependencies) Items() []AllowedDependency {
	return append([]AllowedDependency(nil), a.items...)
}

// withSharedModules appends the root-declared shared modules as implicit
// unnamed-interface allowances (spec.md §4.6 bullet 3). The declaration
// kind (closed vs. undeclared) is preserved so the final disallowed-
// dependency check downstream still distinguishes the two.
func (a AllowedDependencies) withSharedModules(shared []string) AllowedDependencies {
	if a.kind == allowedKindOpen {
		return a
	}
	items := append([]AllowedDependency(nil), a.items...)
	for _, s := range shared {
		items = append(items, AllowedDependency{TargetModule: s})
	}
	return AllowedDependencies{kind: a.kind, items: items}
}

// matchesExplicit implements spec.md §4.6 rules 1-2 for a single target
// class living in module targetModuleID with named interfaces targetNIs.
func (a AllowedDependencies) matchesExplicit(targetModuleID string, targetClassFQN string, targetNIs NamedInterfaces) bool {
	if a.kind == allowedKindOpen {
		return true
	}
	for _, dep := range a.items {
		if dep.TargetModule != targetModuleID {
			continue
		}
		switch dep.Interface {
		case "":
			if ni, ok := targetNIs.Get(domain.UnnamedInterfaceName); ok && ni.Classes.Contains(targetClassFQN) {
				return true
			}
		case domain.WildcardInterface:
			if targetNIs.ContainsClass(targetClassFQN) {
				return true
			}
		default:
			if ni, ok := targetNIs.Get(dep.Interface); ok && ni.Classes.Contains(targetClassFQN) {
				return true
			}
		}
	}
	return false
}

// AllowedTargetsDescription renders the allowed-target list for violation
// messages (spec.md §4.6 "Allowed targets: ...").
func (a AllowedDependencies) AllowedTargetsDescription() string {
	if a.kind == allowedKindOpen {
		return "*"
	}
	if len(a.items) == 0 {
		return "(none)"
	}
	names := make([]string, len(a.items))
	for i, d := range a.items {
		names[i] = d.TargetModule
	}
	return strings.Join(names, ", ")
}

// DependencyValidator implements the full matching pipeline of spec.md §4.6:
// the explicit AllowedDependencies check plus the parent/child and
// exposure-based fallback, grounded on domain.ArchitectureRule /
// service/deps_service.go's validateLayerRules.
type DependencyValidator struct {
	modules *ApplicationModules
}

// NewDependencyValidator binds a validator to a fully constructed container.
func NewDependencyValidator(modules *ApplicationModules) *DependencyValidator {
	return &DependencyValidator{modules: modules}
}

// ValidateEdge implements spec.md §4.6 end-to-end for one DependencyEdge
// originating in module origin, targeting class edge.Target. It returns zero
// or more Violation values (a dependency can fail both the "non-exposed
// type" and, independently, field-injection checks).
func (v *DependencyValidator) ValidateEdge(origin *ApplicationModule, edge DependencyEdge) []domain.Violation {
	var violations []domain.Violation

	if edge.IsFieldInjection() {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationKindFieldInjection,
			Module: string(origin.Identifier()),
			Message: fmt.Sprintf("%s uses field injection in %s. Prefer constructor injection instead!",
				edge.Source, edge.Target),
		})
	}

	targetModule := v.modules.ModuleContaining(edge.Target)
	if targetModule == nil {
		// Target isn't owned by any detected module (e.g. a framework type); nothing more to check.
		return violations
	}
	if targetModule.Identifier() == origin.Identifier() {
		return violations
	}

	allowed := origin.AllowedDependencies().withSharedModules(v.modules.SharedModules())
	targetNIs := targetModule.NamedInterfaces()

	if allowed.matchesExplicit(string(targetModule.Identifier()), edge.Target, targetNIs) {
		return violations
	}

	if targetModule.IsOpen() {
		return violations
	}

	if v.isAncestorOf(origin, targetModule) {
		return violations
	}

	exposed := targetNIs.ContainsClass(edge.Target) || unnamedContains(targetNIs, edge.Target)
	if !exposed {
		containingInterfaces := targetNIs.InterfacesContaining(edge.Target)
		target := string(targetModule.Identifier())
		if len(containingInterfaces) > 0 {
			qualified := make([]string, len(containingInterfaces))
			for i, iface := range containingInterfaces {
				qualified[i] = target + "::" + iface
			}
			target = strings.Join(qualified, ", ")
		}
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationKindNonExposedType,
			Module: string(origin.Identifier()),
			Message: fmt.Sprintf("Module '%s' depends on non-exposed type %s within module '%s'! Allowed targets: %s.",
				origin.Identifier(), edge.Target, target, allowed.AllowedTargetsDescription()),
		})
	}

	if !v.isValidParentChildRelation(origin, targetModule) {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationKindInvalidSubModule,
			Module: string(origin.Identifier()),
			Message: fmt.Sprintf("Module '%s' depends on module '%s' which is not a parent, child, or sibling.",
				origin.Identifier(), targetModule.Identifier()),
		})
		return violations
	}

	if allowed.isDeclaredClosed() {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationKindDisallowedDependency,
			Module: string(origin.Identifier()),
			Message: fmt.Sprintf("Module '%s' depends on module '%s' via %s -> %s. Allowed targets: %s.",
				origin.Identifier(), targetModule.Identifier(), edge.Source, edge.Target, allowed.AllowedTargetsDescription()),
		})
	}

	return violations
}

func unnamedContains(nis NamedInterfaces, fqn string) bool {
	ni, ok := nis.Get(domain.UnnamedInterfaceName)
	return ok && ni.Classes.Contains(fqn)
}

// isAncestorOf reports whether target lies in origin's parent chain
// (spec.md §4.6 "O is a nested module and T lives in any of O's parent chain").
func (v *DependencyValidator) isAncestorOf(origin, target *ApplicationModule) bool {
	cur := origin.Parent()
	for cur != nil {
		if cur.Identifier() == target.Identifier() {
			return true
		}
		cur = cur.Parent()
	}
	return false
}

// isValidParentChildRelation implements spec.md §4.6's final structural
// check: both top-level, one a parent of the other, or sharing an immediate parent.
func (v *DependencyValidator) isValidParentChildRelation(a, b *ApplicationModule) bool {
	if a.Parent() == nil && b.Parent() == nil {
		return true
	}
	if p := a.Parent(); p != nil && p.Identifier() == b.Identifier() {
		return true
	}
	if p := b.Parent(); p != nil && p.Identifier() == a.Identifier() {
		return true
	}
	ap, bp := a.Parent(), b.Parent()
	if ap != nil && bp != nil && ap.Identifier() == bp.Identifier() {
		return true
	}
	return false
}
