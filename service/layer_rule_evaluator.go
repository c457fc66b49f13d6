package service

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archlens/modulith/internal/classmodel"
	"github.com/archlens/modulith/internal/config"
)

// LayerRuleEvaluator implements analyzer.Rule for the architecture.layers /
// architecture.rules configuration sections: an additional, configuration-driven
// source of violations layered on top of the module-to-module checks from
// spec.md §4.6, grounded on module_analyzer.go's layer dependency rules.
type LayerRuleEvaluator struct {
	layers []config.LayerDefinition
	rules  []config.LayerRule
}

// NewLayerRuleEvaluator builds an evaluator from the loaded layer definitions and rules.
func NewLayerRuleEvaluator(layers []config.LayerDefinition, rules []config.LayerRule) *LayerRuleEvaluator {
	return &LayerRuleEvaluator{layers: layers, rules: rules}
}

// Evaluate checks, for every pair of classes whose packages match a "from"
// and "to" layer pattern, whether a direct reference between them is allowed.
func (e *LayerRuleEvaluator) Evaluate(universe classmodel.Classes) []string {
	var messages []string
	layerOf := func(pkg string) string {
		for _, l := range e.layers {
			for _, pattern := range l.Patterns {
				if ok, _ := doublestar.Match(pattern, pkg); ok {
					return l.Name
				}
			}
		}
		return ""
	}

	denied := map[[2]string]bool{}
	allowed := map[[2]string]bool{}
	for _, r := range e.rules {
		if r.Allow {
			allowed[[2]string{r.From, r.To}] = true
		} else {
			denied[[2]string{r.From, r.To}] = true
		}
	}

	for _, cl := range universe.All() {
		fromLayer := layerOf(cl.Package)
		if fromLayer == "" {
			continue
		}
		for _, ref := range cl.References {
			target, ok := universe.Get(ref.Target)
			if !ok {
				continue
			}
			toLayer := layerOf(target.Package)
			if toLayer == "" || toLayer == fromLayer {
				continue
			}
			pair := [2]string{fromLayer, toLayer}
			if denied[pair] || (len(allowed) > 0 && !allowed[pair]) {
				messages = append(messages, fmt.Sprintf(
					"layer %s (%s) must not depend on layer %s (%s)", fromLayer, cl.FQN, toLayer, target.FQN))
			}
		}
	}
	return messages
}
