package geartype

import (
	"slices"

	"github.com/sells-group/shipdata/internal/model"
)

// ResolveWithConfidence resolves "<level>-<tag>" values using the tags at
// the highest level present. When the highest level is 3 and level 2
// evidence exists, the level 3 resolution is replaced by the combined level
// 2 and 3 resolution only if the level 3 tags are a strict subset of it.
// The result carries the highest level.
func (r *Resolver) ResolveWithConfidence(tagged []string) model.Optional[string] {
	byLevel := make(map[int][]string)
	maxLevel := 0
	for _, t := range tagged {
		level, v, ok := model.ParseTagged(t)
		if !ok || v == "" {
			continue
		}
		byLevel[level] = append(byLevel[level], v)
		maxLevel = max(maxLevel, level)
	}
	if maxLevel == 0 {
		return model.None[string]()
	}

	var res model.Optional[string]
	if lower, ok := byLevel[2]; maxLevel == 3 && ok {
		r3 := r.Resolve(byLevel[3])
		r23 := r.Resolve(append(slices.Clone(lower), byLevel[3]...))
		res = r3
		if strictSubset(tagSet(r3), tagSet(r23)) {
			res = r23
		}
	} else {
		res = r.Resolve(byLevel[maxLevel])
	}

	v, ok := res.Get()
	if !ok {
		return model.None[string]()
	}
	return model.Some(model.FormatTagged(maxLevel, v))
}

// MergeConfidence combines two confidence-tagged resolutions of the same
// vessel. The higher level wins outright; equal levels resolve the union of
// both sides at that level. A side that is missing or not tagged is ignored.
func (r *Resolver) MergeConfidence(a, b model.Optional[string]) model.Optional[string] {
	la, va, okA := parseOptional(a)
	lb, vb, okB := parseOptional(b)

	switch {
	case !okA && !okB:
		return model.None[string]()
	case !okB:
		return model.Some(model.FormatTagged(la, va))
	case !okA:
		return model.Some(model.FormatTagged(lb, vb))
	case la > lb:
		return model.Some(model.FormatTagged(la, va))
	case lb > la:
		return model.Some(model.FormatTagged(lb, vb))
	}

	v, ok := r.Resolve([]string{va, vb}).Get()
	if !ok {
		return model.None[string]()
	}
	return model.Some(model.FormatTagged(la, v))
}

func parseOptional(o model.Optional[string]) (int, string, bool) {
	s, ok := o.Get()
	if !ok {
		return 0, "", false
	}
	level, v, ok := model.ParseTagged(s)
	if !ok || v == "" {
		return 0, "", false
	}
	return level, v, true
}

func tagSet(o model.Optional[string]) []string {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return members(v)
}
