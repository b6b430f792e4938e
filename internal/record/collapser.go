package record

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/shipdata/internal/canon"
	"github.com/sells-group/shipdata/internal/collapse"
	"github.com/sells-group/shipdata/internal/geartype"
	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/standardize"
)

// Collapser turns groups of observations into consensus records. It only
// reads its rules and the immutable gear resolver, so one Collapser may be
// shared by any number of goroutines.
type Collapser struct {
	rules   []FieldRule
	gear    *geartype.Resolver
	fishing string
}

// NewCollapser validates rules and returns a Collapser. A resolver is
// required when any field uses a gear rule; the first such field decides
// is_fishing.
func NewCollapser(rules []FieldRule, gear *geartype.Resolver) (*Collapser, error) {
	c := &Collapser{gear: gear}
	seen := make(map[string]bool, len(rules))
	for _, fr := range rules {
		if fr.Field == "" {
			return nil, eris.New("record: field rule without a field")
		}
		if seen[fr.Field] {
			return nil, eris.Errorf("record: field %q has more than one rule", fr.Field)
		}
		seen[fr.Field] = true

		if _, err := ParseRule(string(fr.Rule)); err != nil {
			return nil, eris.Wrapf(err, "record: field %q", fr.Field)
		}
		if fr.Rule.IsGear() {
			if gear == nil {
				return nil, eris.Errorf("record: field %q needs a gear resolver", fr.Field)
			}
			if c.fishing == "" {
				c.fishing = fr.Field
			}
		}
		c.rules = append(c.rules, fr)
	}
	return c, nil
}

// Rules returns the field rules in output order.
func (c *Collapser) Rules() []FieldRule {
	out := make([]FieldRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// CollapseGroup collapses one vessel's observations.
func (c *Collapser) CollapseGroup(g Group) Consensus {
	out := Consensus{Key: g.Key, Fields: make([]Field, 0, len(c.rules))}
	for _, fr := range c.rules {
		v := c.collapseField(fr.Rule, g.Values(fr.Field))
		out.Fields = append(out.Fields, Field{Name: fr.Field, Value: v})

		if fr.Field == c.fishing {
			if expr, ok := v.Get(); ok {
				out.IsFishing = c.gear.IsFishing(expr)
			}
		}
	}
	return out
}

func (c *Collapser) collapseField(rule Rule, values []model.Value) model.Optional[string] {
	switch rule {
	case RuleName:
		return mostCommon(values, canon.NormalizeNameValue)
	case RuleCallsign:
		return mostCommon(values, canon.NormalizeCallsignValue)
	case RuleIMO:
		return mostCommon(values, standardize.IMO)
	case RuleOwner:
		return mostCommon(values, func(v model.Value) model.Optional[string] {
			return standardize.Owner(v.Text())
		})
	case RuleGear:
		return c.gear.Resolve(texts(values))
	case RuleGearConfidence:
		return c.gear.ResolveWithConfidence(texts(values))
	}

	// Rules are validated in NewCollapser.
	v, _ := collapse.Apply(collapse.Rule(rule), values)
	return v
}

// CollapseAll collapses groups on up to workers goroutines. Results are in
// group order. It stops early and returns the context error when ctx is
// cancelled.
func (c *Collapser) CollapseAll(ctx context.Context, groups []Group, workers int) ([]Consensus, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Consensus, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, grp := range groups {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = c.CollapseGroup(grp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "record: collapse groups")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "record: collapse groups")
	}
	return out, nil
}

// mostCommon standardizes every value and returns the most frequent result.
func mostCommon(values []model.Value, std func(model.Value) model.Optional[string]) model.Optional[string] {
	cleaned := make([]model.Value, 0, len(values))
	for _, v := range values {
		if s, ok := std(v).Get(); ok {
			cleaned = append(cleaned, model.String(s))
		}
	}
	return collapse.ModeString(cleaned)
}

func texts(values []model.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			out = append(out, v.Text())
		}
	}
	return out
}
