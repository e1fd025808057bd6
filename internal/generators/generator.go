package generators

import (
	"fmt"
	"math/rand"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

// Generator produces one value per call for a resolved rule. Each call is
// independent of previous calls apart from the shared rng.
type Generator interface {
	Generate(rng *rand.Rand) (interface{}, error)
}

// New builds the generator for a rule, validating its parameters.
func New(rule domain.GenerationRule) (Generator, error) {
	switch rule.Kind {
	case domain.RuleTinyInt:
		return &TinyIntGenerator{}, nil
	case domain.RuleInt:
		return NewUniformIntGenerator(rule.Digits)
	case domain.RuleText:
		return NewTextGenerator(rule.MinLen, rule.MaxLen)
	case domain.RuleDateTime:
		return NewDateTimeGenerator(rule.Start, rule.End)
	case domain.RuleDouble:
		return NewUniformFloatGenerator(rule.Min, rule.Max)
	default:
		return nil, fmt.Errorf("no generator for rule kind: %s", rule.Kind)
	}
}

// ForRules builds one generator per rule, omitting Skip rules.
func ForRules(rules []domain.GenerationRule) ([]Generator, error) {
	gens := make([]Generator, 0, len(rules))
	for i, rule := range rules {
		if rule.Kind == domain.RuleSkip {
			continue
		}
		g, err := New(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		gens = append(gens, g)
	}
	return gens, nil
}
