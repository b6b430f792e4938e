package record

import (
	"encoding/json"

	"github.com/sells-group/shipdata/internal/model"
)

// Field is one collapsed attribute.
type Field struct {
	Name  string                `json:"name"`
	Value model.Optional[string] `json:"value"`
}

// Consensus is the collapsed record for one vessel. Fields follow the rule
// order of the Collapser that produced it.
type Consensus struct {
	Key       string               `json:"key"`
	Fields    []Field              `json:"fields"`
	IsFishing model.Optional[bool] `json:"is_fishing"`
}

// Get returns the consensus value of a field.
func (c Consensus) Get(name string) model.Optional[string] {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return model.None[string]()
}

// Map returns the fields keyed by name. Missing values are omitted.
func (c Consensus) Map() map[string]string {
	out := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		if v, ok := f.Value.Get(); ok {
			out[f.Name] = v
		}
	}
	return out
}

// MarshalJSON flattens the record into one object keyed by field name.
func (c Consensus) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(c.Fields)+2)
	for _, f := range c.Fields {
		obj[f.Name] = f.Value
	}
	obj["key"] = c.Key
	obj["is_fishing"] = c.IsFishing
	return json.Marshal(obj)
}
