package collapse

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/standardize"
)

// DefaultConfidence is the level reported when no confidence is recorded.
const DefaultConfidence = 1

// ModeString returns the most frequent value after upper-casing and
// collapsing whitespace. Ties go to the value seen first.
func ModeString(values []model.Value) model.Optional[string] {
	xs := make([]string, 0, len(values))
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if s := strings.ToUpper(strings.Join(strings.Fields(v.Text()), " ")); s != "" {
			xs = append(xs, s)
		}
	}
	return mode(xs)
}

// ConcatDistinct joins the distinct values in lexical order with ", ".
// Whole numbers are rendered as integers, whether they arrive as numbers or
// as decimal text such as "12.0".
func ConcatDistinct(values []model.Value) model.Optional[string] {
	var xs []string
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if s := concatText(v); s != "" {
			xs = append(xs, s)
		}
	}
	if len(xs) == 0 {
		return model.None[string]()
	}
	slices.Sort(xs)
	return model.Some(strings.Join(slices.Compact(xs), ", "))
}

// concatText leaves text without a decimal point alone so identifiers with
// leading zeros survive.
func concatText(v model.Value) string {
	s := strings.TrimSpace(v.Text())
	if v.Kind != model.KindString || !strings.Contains(s, ".") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return model.FormatNumber(f)
}

// TimeMin returns the earliest parseable timestamp.
func TimeMin(values []model.Value) model.Optional[time.Time] {
	return extremeTime(values, func(a, b time.Time) bool { return a.Before(b) })
}

// TimeMax returns the latest parseable timestamp.
func TimeMax(values []model.Value) model.Optional[time.Time] {
	return extremeTime(values, func(a, b time.Time) bool { return a.After(b) })
}

func extremeTime(values []model.Value, better func(a, b time.Time) bool) model.Optional[time.Time] {
	var (
		best  time.Time
		found bool
	)
	for _, v := range values {
		t, ok := standardize.Time(v).Get()
		if !ok {
			continue
		}
		if !found || better(t, best) {
			best, found = t, true
		}
	}
	if !found {
		return model.None[time.Time]()
	}
	return model.Some(best)
}

// MaxConfidence returns the highest confidence level in values, or
// DefaultConfidence when none is present.
func MaxConfidence(values []model.Value) int {
	best, found := 0, false
	for _, v := range values {
		level, ok := confidence(v)
		if !ok {
			continue
		}
		if !found || level > best {
			best, found = level, true
		}
	}
	if !found {
		return DefaultConfidence
	}
	return best
}

func confidence(v model.Value) (int, bool) {
	switch {
	case v.IsMissing():
		return 0, false
	case v.Kind == model.KindNumber:
		return int(v.Num), true
	}
	if level, _, ok := model.ParseTagged(v.Str); ok {
		return level, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
