// Package geartype resolves conflicting gear and ship-type tags into the most
// specific classification the combined evidence supports.
//
// Tags are plain taxonomy names. An OR-expression joins alternative tags
// with "|" and stands for genuine ambiguity between them.
package geartype

import (
	"slices"
	"strings"
	"unicode"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/taxonomy"
)

// Separator joins the members of an OR-expression.
const Separator = "|"

// Resolver resolves tags against an immutable taxonomy index. It holds no
// other state and is safe for concurrent use.
type Resolver struct {
	idx *taxonomy.Index
}

// New returns a Resolver bound to idx.
func New(idx *taxonomy.Index) *Resolver {
	return &Resolver{idx: idx}
}

// Index returns the taxonomy the resolver is bound to.
func (r *Resolver) Index() *taxonomy.Index {
	return r.idx
}

// Resolve reduces tags and OR-expressions to the most specific tags they
// support, joined with "|" in lexical order. Tags missing from the taxonomy
// are dropped. Missing when nothing resolves.
func (r *Resolver) Resolve(tags []string) model.Optional[string] {
	norm := Normalize(tags)
	if len(norm) == 0 {
		return model.None[string]()
	}

	reduced := r.ReduceToSpecificsWithMultiples(norm)

	var flat []string
	for _, g := range reduced {
		flat = append(flat, members(g)...)
	}
	out := r.ReduceToSpecifics(flat)
	if len(out) == 0 {
		return model.None[string]()
	}
	return model.Some(strings.Join(out, Separator))
}

// ReduceToSpecifics drops every single tag whose taxonomy path is implied by
// a more specific tag in the same list. OR-expressions pass through
// untouched. Singles come first in lexical order, followed by the distinct
// OR-expressions.
func (r *Resolver) ReduceToSpecifics(tags []string) []string {
	return r.reduce(tags, dominatesSpecific)
}

// ReduceToGeneral is the dual of ReduceToSpecifics: a tag is dropped when a
// broader tag in the list already covers it.
func (r *Resolver) ReduceToGeneral(tags []string) []string {
	return r.reduce(tags, dominatesGeneral)
}

// ReduceToSpecificsWithMultiples reduces singles, then replaces an
// OR-expression with the tag one of its members pins down. A member pins a
// tag when pairing it with exactly one surviving single reduces to a single
// tag. The replacement only happens when exactly one member of the
// expression pins something; otherwise the ambiguity stays.
func (r *Resolver) ReduceToSpecificsWithMultiples(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	reduced := r.ReduceToSpecifics(tags)
	singles, multiples := split(reduced)

	out := slices.Clone(singles)
	for _, expr := range multiples {
		hits := 0
		var pinned []string
		for _, m := range members(expr) {
			if !r.idx.Contains(m) {
				continue
			}
			var vals [][]string
			for _, s := range singles {
				if pair := r.ReduceToSpecifics([]string{m, s}); len(pair) == 1 {
					vals = append(vals, pair)
				}
			}
			if len(vals) == 1 {
				hits++
				pinned = vals[0]
			}
		}
		if hits == 1 {
			out = append(out, pinned...)
		} else {
			out = append(out, expr)
		}
	}

	return r.ReduceToSpecifics(out)
}

// dominance reports whether path a is eliminated by path b.
type dominance func(a, b []string) bool

// dominatesSpecific eliminates a when its labels are a strict subset of b.
func dominatesSpecific(a, b []string) bool {
	return strictSubset(a, b)
}

// dominatesGeneral eliminates a when b's labels are a strict subset of a.
func dominatesGeneral(a, b []string) bool {
	return strictSubset(b, a)
}

func (r *Resolver) reduce(tags []string, eliminated dominance) []string {
	if len(tags) == 0 {
		return nil
	}
	singles, multiples := split(tags)

	type entry struct {
		tag  string
		path []string
	}
	var mapped []entry
	seen := make(map[string]bool, len(singles))
	for _, s := range singles {
		if seen[s] {
			continue
		}
		seen[s] = true
		if p, ok := r.idx.Path(s); ok {
			mapped = append(mapped, entry{tag: s, path: p})
		}
	}

	var out []string
	for _, e := range mapped {
		dominated := false
		for _, o := range mapped {
			if o.tag != e.tag && eliminated(e.path, o.path) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, e.path[len(e.path)-1])
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)

	return append(out, dedupe(multiples)...)
}

// Normalize strips whitespace from every tag, drops empty tags and empty
// OR-members, and rewrites each OR-expression with distinct members in
// lexical order. An expression left with one member becomes a single tag.
func Normalize(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = stripSpace(t)
		if t == "" {
			continue
		}
		if !strings.Contains(t, Separator) {
			out = append(out, t)
			continue
		}
		ms := members(t)
		switch len(ms) {
		case 0:
		case 1:
			out = append(out, ms[0])
		default:
			out = append(out, strings.Join(ms, Separator))
		}
	}
	return out
}

// members splits an expression into its distinct non-empty tags, sorted.
func members(expr string) []string {
	var ms []string
	for _, m := range strings.Split(expr, Separator) {
		if m = stripSpace(m); m != "" {
			ms = append(ms, m)
		}
	}
	slices.Sort(ms)
	return slices.Compact(ms)
}

func split(tags []string) (singles, multiples []string) {
	for _, t := range tags {
		if strings.Contains(t, Separator) {
			multiples = append(multiples, t)
		} else {
			singles = append(singles, t)
		}
	}
	return singles, multiples
}

func dedupe(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	out := slices.Clone(ss)
	slices.Sort(out)
	return slices.Compact(out)
}

func strictSubset(a, b []string) bool {
	if len(a) >= len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
