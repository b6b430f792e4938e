package standardize

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/sells-group/shipdata/internal/model"
)

// Float parses v as a number after removing thousands separators. Zero,
// blank, unparseable and non-finite values (NaN, Inf) are missing.
func Float(v model.Value) model.Optional[float64] {
	var f float64
	switch {
	case v.IsMissing():
		return model.None[float64]()
	case v.Kind == model.KindNumber:
		f = v.Num
	default:
		var err error
		f, err = cast.ToFloat64E(strings.ReplaceAll(strings.TrimSpace(v.Str), ",", ""))
		if err != nil {
			return model.None[float64]()
		}
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.None[float64]()
	}
	return model.Some(f)
}

// Time parses v as a timestamp. Numbers are Unix seconds. Values without a
// zone are read as UTC.
func Time(v model.Value) model.Optional[time.Time] {
	var (
		t   time.Time
		err error
	)
	switch {
	case v.IsMissing():
		return model.None[time.Time]()
	case v.Kind == model.KindNumber:
		t, err = cast.ToTimeE(int64(v.Num))
	default:
		t, err = cast.ToTimeE(strings.TrimSpace(v.Str))
	}
	if err != nil {
		return model.None[time.Time]()
	}
	return model.Some(t.UTC())
}
