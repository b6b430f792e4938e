package record

import (
	"strings"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/standardize"
)

// Mappings holds per-field lookup tables that translate registry codes
// into shared vocabularies, e.g. flag codes into ISO3 or local gear names
// into taxonomy tags. Table keys are matched case-insensitively.
type Mappings map[string]map[string]string

// Remap rewrites mapped fields through their lookup table. Values without an
// entry become missing. The input observations are left untouched.
func Remap(obs []Observation, mappings Mappings) []Observation {
	if len(mappings) == 0 {
		return obs
	}
	tables := make(map[string]map[string]string, len(mappings))
	for field, table := range mappings {
		upper := make(map[string]string, len(table))
		for k, v := range table {
			upper[strings.ToUpper(strings.TrimSpace(k))] = v
		}
		tables[field] = upper
	}

	out := make([]Observation, len(obs))
	for i, o := range obs {
		fields := make(map[string]model.Value, len(o.Fields))
		for name, v := range o.Fields {
			table, ok := tables[name]
			if !ok {
				fields[name] = v
				continue
			}
			if mapped, ok := standardize.Map(table, v.Text(), false).Get(); ok {
				fields[name] = model.String(mapped)
			} else {
				fields[name] = model.Missing()
			}
		}
		out[i] = Observation{Key: o.Key, Fields: fields}
	}
	return out
}
