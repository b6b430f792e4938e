package fetcher

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/record"
)

// ObservationOptions maps registry columns to observation fields.
type ObservationOptions struct {
	// KeyColumn holds the vessel key after renaming.
	KeyColumn string
	// Columns renames source columns to field names. Keys are matched
	// against the normalized header.
	Columns map[string]string
	// Source, when set, is stored in the "source" field of every
	// observation that has no source column.
	Source string
}

// HeaderName normalizes a column name: trimmed, lower case, runs of spaces
// and dashes become one underscore.
func HeaderName(s string) string {
	f := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	return strings.Join(f, "_")
}

// ReadObservations drains a row stream whose first row is the header and
// converts each data row to an observation. Blank cells become missing
// values; everything else stays text so the collapsing rules decide how to
// read it.
func ReadObservations(ctx context.Context, rows <-chan []string, errs <-chan error, opts ObservationOptions) ([]record.Observation, error) {
	var (
		header []string
		keyIdx = -1
		out    []record.Observation
	)

	for row := range rows {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "fetcher: read observations")
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				name := HeaderName(h)
				if renamed, ok := opts.Columns[name]; ok {
					name = renamed
				}
				header[i] = name
				if name == opts.KeyColumn && keyIdx < 0 {
					keyIdx = i
				}
			}
			if keyIdx < 0 {
				drain(rows)
				return nil, eris.Errorf("fetcher: key column %q not in header %v", opts.KeyColumn, header)
			}
			continue
		}

		if keyIdx >= len(row) || row[keyIdx] == "" {
			continue
		}
		obs := record.Observation{Key: row[keyIdx], Fields: make(map[string]model.Value, len(header))}
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			if row[i] == "" {
				obs.Fields[name] = model.Missing()
			} else {
				obs.Fields[name] = model.String(row[i])
			}
		}
		if _, ok := obs.Fields["source"]; !ok && opts.Source != "" {
			obs.Fields["source"] = model.String(opts.Source)
		}
		out = append(out, obs)
	}

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if header == nil {
		return nil, eris.New("fetcher: empty registry file")
	}
	return out, nil
}

func drain(rows <-chan []string) {
	go func() {
		for range rows {
		}
	}()
}
