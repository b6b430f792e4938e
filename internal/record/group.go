package record

import (
	"github.com/sells-group/shipdata/internal/model"
)

// Observation is one source row for a vessel.
type Observation struct {
	Key    string
	Fields map[string]model.Value
}

// Group holds every observation sharing a vessel key.
type Group struct {
	Key          string
	Observations []Observation
}

// Values returns the field's values across the group, in observation order.
// Observations without the field contribute a missing value.
func (g Group) Values(field string) []model.Value {
	out := make([]model.Value, len(g.Observations))
	for i, o := range g.Observations {
		out[i] = o.Fields[field]
	}
	return out
}

// GroupByKey groups observations by vessel key. Groups appear in the order
// their key is first seen and keep their observations in input order.
// Observations with a blank key are skipped.
func GroupByKey(obs []Observation) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, o := range obs {
		if o.Key == "" {
			continue
		}
		i, ok := index[o.Key]
		if !ok {
			i = len(groups)
			index[o.Key] = i
			groups = append(groups, Group{Key: o.Key})
		}
		groups[i].Observations = append(groups[i].Observations, o)
	}
	return groups
}
