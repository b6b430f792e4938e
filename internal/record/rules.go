// Package record groups duplicate registry observations by vessel and
// collapses each group into one consensus record.
package record

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shipdata/internal/collapse"
)

// Rule selects how one field is collapsed. Besides the collapse rules it
// covers the fields that need canonicalization or gear resolution first.
type Rule string

const (
	RuleName           Rule = "name"
	RuleCallsign       Rule = "callsign"
	RuleGear           Rule = "gear"
	RuleGearConfidence Rule = "gear_confidence"
	RuleIMO            Rule = "imo"
	RuleOwner          Rule = "owner"
)

// FieldRule binds a field to its collapsing rule.
type FieldRule struct {
	Field string `json:"field" yaml:"field"`
	Rule  Rule   `json:"rule" yaml:"rule"`
}

var ErrUnknownRule = eris.New("unknown field rule")

var fieldRules = []Rule{RuleName, RuleCallsign, RuleGear, RuleGearConfidence, RuleIMO, RuleOwner}

// ParseRule validates a field rule name.
func ParseRule(name string) (Rule, error) {
	r := Rule(name)
	if slices.Contains(fieldRules, r) {
		return r, nil
	}
	if _, err := collapse.ParseRule(name); err == nil {
		return r, nil
	}
	return "", eris.Wrapf(ErrUnknownRule, "record: %q", name)
}

// IsGear reports whether the rule resolves gear tags.
func (r Rule) IsGear() bool {
	return r == RuleGear || r == RuleGearConfidence
}

// DefaultRules returns the field rules for the standard registry columns.
func DefaultRules() []FieldRule {
	return []FieldRule{
		{Field: "shipname", Rule: RuleName},
		{Field: "callsign", Rule: RuleCallsign},
		{Field: "imo", Rule: RuleIMO},
		{Field: "geartype", Rule: RuleGear},
		{Field: "flag", Rule: Rule(collapse.ModeText)},
		{Field: "owner", Rule: RuleOwner},
		{Field: "length", Rule: Rule(collapse.Numeric)},
		{Field: "tonnage", Rule: Rule(collapse.Numeric)},
		{Field: "engine_power", Rule: Rule(collapse.Numeric)},
		{Field: "first_timestamp", Rule: Rule(collapse.EarliestTime)},
		{Field: "last_timestamp", Rule: Rule(collapse.LatestTime)},
		{Field: "source", Rule: Rule(collapse.Concat)},
		{Field: "confidence", Rule: Rule(collapse.HighestConfidence)},
	}
}

// WithOverrides returns rules with the rule of each named field replaced,
// and fields not in rules appended in name order.
func WithOverrides(rules []FieldRule, overrides map[string]string) ([]FieldRule, error) {
	out := slices.Clone(rules)

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, field := range names {
		rule, err := ParseRule(overrides[field])
		if err != nil {
			return nil, eris.Wrapf(err, "record: field %q", field)
		}
		i := slices.IndexFunc(out, func(fr FieldRule) bool { return fr.Field == field })
		if i >= 0 {
			out[i].Rule = rule
			continue
		}
		out = append(out, FieldRule{Field: field, Rule: rule})
	}
	return out, nil
}
