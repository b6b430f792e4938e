package standardize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shipdata/internal/model"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   model.Value
		want model.Optional[float64]
	}{
		{"separators", model.String("1,234.5"), model.Some(1234.5)},
		{"padded", model.String(" 12 "), model.Some(12.0)},
		{"number", model.Number(9.9), model.Some(9.9)},
		{"zero number", model.Number(0), model.None[float64]()},
		{"zero string", model.String("0"), model.None[float64]()},
		{"blank", model.String(""), model.None[float64]()},
		{"text", model.String("n/a"), model.None[float64]()},
		{"missing", model.Missing(), model.None[float64]()},
		{"nan text", model.String("NaN"), model.None[float64]()},
		{"inf text", model.String("-Inf"), model.None[float64]()},
		{"nan number", model.Number(math.NaN()), model.None[float64]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float(tt.in))
		})
	}
}

func TestTime(t *testing.T) {
	got, ok := Time(model.String("2021-03-04")).Get()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), got)

	got, ok = Time(model.String("2020-01-01T10:00:00+02:00")).Get()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), got)

	got, ok = Time(model.Number(86400)).Get()
	assert.True(t, ok)
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), got)

	assert.False(t, Time(model.String("not a date")).Valid())
	assert.False(t, Time(model.Missing()).Valid())
}
