// Package collapse derives one consensus value from the conflicting values
// that duplicate registry records contribute for the same vessel attribute.
//
// Every rule takes the values as a []model.Value and is total: unparseable
// values are treated as absent and a rule never fails.
package collapse

import (
	"math"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/standardize"
)

// MaxRelativeStd is the largest standard deviation, relative to the mean,
// for which numeric values are considered to agree.
const MaxRelativeStd = 0.10

// NumericConsensus returns the mean of the non-zero numbers in values, or
// missing when their sample standard deviation exceeds MaxRelativeStd of
// the mean.
func NumericConsensus(values []model.Value) model.Optional[float64] {
	return consensus(numbers(values))
}

// NumericConsensusWithConfidence applies NumericConsensus to the
// "<level>-<number>" values at the highest level present.
func NumericConsensusWithConfidence(tagged []model.Value) model.Optional[float64] {
	byLevel := make(map[int][]model.Value)
	maxLevel := 0
	for _, v := range tagged {
		if v.Kind != model.KindString {
			continue
		}
		level, raw, ok := model.ParseTagged(v.Str)
		if !ok {
			continue
		}
		byLevel[level] = append(byLevel[level], model.String(raw))
		maxLevel = max(maxLevel, level)
	}
	if maxLevel == 0 {
		return model.None[float64]()
	}
	return NumericConsensus(byLevel[maxLevel])
}

// ModeNumeric returns the most frequent non-zero number. Ties go to the
// value seen first.
func ModeNumeric(values []model.Value) model.Optional[float64] {
	return mode(numbers(values))
}

func consensus(xs []float64) model.Optional[float64] {
	if len(xs) == 0 {
		return model.None[float64]()
	}
	mean, std := meanStd(xs)
	if math.IsInf(mean, 0) || math.IsNaN(std) || std > MaxRelativeStd*mean {
		return model.None[float64]()
	}
	return model.Some(mean)
}

// meanStd returns the mean and the sample standard deviation, which is zero
// for fewer than two values.
func meanStd(xs []float64) (mean, std float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

func numbers(values []model.Value) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := standardize.Float(v).Get(); ok {
			xs = append(xs, f)
		}
	}
	return xs
}

func mode[T comparable](xs []T) model.Optional[T] {
	if len(xs) == 0 {
		return model.None[T]()
	}
	counts := make(map[T]int, len(xs))
	for _, x := range xs {
		counts[x]++
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if counts[x] > counts[best] {
			best = x
		}
	}
	return model.Some(best)
}
