package geartype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shipdata/internal/model"
)

func TestResolveWithConfidence(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name   string
		tagged []string
		want   model.Optional[string]
	}{
		{"highest level wins", []string{"1-trawlers", "2-set_longlines"}, model.Some("2-set_longlines")},
		{"level three agrees", []string{"3-trawlers", "2-trawlers|purse_seines"}, model.Some("3-trawlers")},
		{"level three broader kept", []string{"3-fixed_gear", "2-set_longlines"}, model.Some("3-fixed_gear")},
		{"level three narrower", []string{"3-trawlers", "2-set_longlines"}, model.Some("3-set_longlines|trawlers")},
		{"level three unresolvable", []string{"3-unknown", "2-trawlers"}, model.Some("3-trawlers")},
		{"level four ignores rest", []string{"4-trawlers", "2-purse_seines", "3-set_longlines"}, model.Some("4-trawlers")},
		{"spaces", []string{"2 - trawlers"}, model.Some("2-trawlers")},
		{"nothing tagged", []string{"bogus", "x-trawlers", ""}, model.None[string]()},
		{"unresolvable", []string{"2-unknown"}, model.None[string]()},
		{"empty", nil, model.None[string]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveWithConfidence(tt.tagged))
		})
	}
}

func TestMergeConfidence(t *testing.T) {
	r := newResolver(t)
	none := model.None[string]()

	tests := []struct {
		name string
		a, b model.Optional[string]
		want model.Optional[string]
	}{
		{"higher left", model.Some("3-trawlers"), model.Some("2-purse_seines"), model.Some("3-trawlers")},
		{"higher right", model.Some("1-trawlers"), model.Some("2-purse_seines"), model.Some("2-purse_seines")},
		{"equal union", model.Some("2-trawlers"), model.Some("2-trawlers|purse_seines"), model.Some("2-trawlers")},
		{"equal specific", model.Some("2-fishing"), model.Some("2-set_longlines"), model.Some("2-set_longlines")},
		{"left only", model.Some("2-tug"), none, model.Some("2-tug")},
		{"right only", none, model.Some("1-tug"), model.Some("1-tug")},
		{"untagged ignored", model.Some("garbage"), model.Some("1-tug"), model.Some("1-tug")},
		{"neither", none, none, none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.MergeConfidence(tt.a, tt.b))
		})
	}
}

func TestMergeConfidence_NeverLowersLevel(t *testing.T) {
	r := newResolver(t)
	values := []string{"1-trawlers", "2-set_longlines", "3-fixed_gear", "2-trawlers|tug", "3-cargo", "1-fishing"}

	for _, a := range values {
		for _, b := range values {
			la, _, _ := model.ParseTagged(a)
			lb, _, _ := model.ParseTagged(b)

			got, ok := r.MergeConfidence(model.Some(a), model.Some(b)).Get()
			if !ok {
				continue
			}
			level, _, ok := model.ParseTagged(got)
			assert.True(t, ok)
			assert.Equal(t, max(la, lb), level, "%s + %s", a, b)
		}
	}
}
