// Package store persists collapsed vessel records, one row per field.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/record"
)

// RunStatus is the lifecycle state of a collapse run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusComplete RunStatus = "complete"
)

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = eris.New("store: run not found")

// Run describes one collapse of a registry source.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Status    RunStatus `json:"status"`
	Vessels   int       `json:"vessels"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the persistence interface for collapse runs.
type Store interface {
	CreateRun(ctx context.Context, source string) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	// SaveRun writes the records of a run and marks it complete. Saving the
	// same run twice replaces field values rather than duplicating them.
	SaveRun(ctx context.Context, runID string, records []record.Consensus) (int64, error)
	// ListRun returns the records of a run in the order they were saved.
	ListRun(ctx context.Context, runID string) ([]record.Consensus, error)

	Migrate(ctx context.Context) error
	Close() error
}

// fieldColumns is the column order of consensus_fields.
var fieldColumns = []string{"run_id", "vessel_key", "vessel_pos", "field_pos", "field", "value", "is_fishing"}

// fieldRows flattens records into consensus_fields rows. Missing values
// become NULL.
func fieldRows(runID string, records []record.Consensus) [][]any {
	var rows [][]any
	for i, c := range records {
		var fishing any
		if b, ok := c.IsFishing.Get(); ok {
			fishing = b
		}
		for j, f := range c.Fields {
			var value any
			if v, ok := f.Value.Get(); ok {
				value = v
			}
			rows = append(rows, []any{runID, c.Key, i, j, f.Name, value, fishing})
		}
	}
	return rows
}

// assembler rebuilds records from rows sorted by vessel_pos, field_pos.
type assembler struct {
	out []record.Consensus
}

func (a *assembler) add(key, field string, value *string, fishing *bool) {
	if n := len(a.out); n == 0 || a.out[n-1].Key != key {
		c := record.Consensus{Key: key, IsFishing: model.None[bool]()}
		if fishing != nil {
			c.IsFishing = model.Some(*fishing)
		}
		a.out = append(a.out, c)
	}
	f := record.Field{Name: field, Value: model.None[string]()}
	if value != nil {
		f.Value = model.Some(*value)
	}
	last := &a.out[len(a.out)-1]
	last.Fields = append(last.Fields, f)
}
