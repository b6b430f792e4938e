package collapse

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/shipdata/internal/model"
)

func TestNumericConsensus_Outlier(t *testing.T) {
	assert.False(t, NumericConsensus(model.Numbers(10.0, 10.2, 9.9, 50.0)).Valid())
}

func TestNumericConsensus(t *testing.T) {
	tests := []struct {
		name   string
		values []model.Value
		want   float64
		ok     bool
	}{
		{"agreeing", model.Numbers(10.0, 10.2, 9.9), 10.033333, true},
		{"zeros dropped", model.Numbers(0, 12, 12), 12, true},
		{"separators", model.Strings("1,200", "1,250"), 1225, true},
		{"single", model.Numbers(7), 7, true},
		{"within threshold", model.Numbers(10, 11), 10.5, true},
		{"beyond threshold", model.Numbers(10, 12), 0, false},
		{"unparseable dropped", []model.Value{model.String("n/a"), model.Number(30), model.Missing()}, 30, true},
		{"all zero", model.Numbers(0, 0), 0, false},
		{"empty", nil, 0, false},
		{"nan only", model.Strings("NaN"), 0, false},
		{"nan dropped", []model.Value{model.Number(10), model.String("nan")}, 10, true},
		{"inf dropped", []model.Value{model.Number(10), model.String("Inf")}, 10, true},
		{"nan number dropped", model.Numbers(math.NaN(), 12, 12), 12, true},
		{"sum overflows", model.Numbers(math.MaxFloat64, math.MaxFloat64), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumericConsensus(tt.values).Get()
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-6)
			}
		})
	}
}

func TestNumericConsensus_RelativeStdBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 1000; i++ {
		xs := make([]float64, 2+rng.IntN(6))
		for j := range xs {
			xs[j] = 100 + rng.NormFloat64()*float64(1+rng.IntN(20))
		}

		got, ok := NumericConsensus(model.Numbers(xs...)).Get()
		mean, std := meanStd(xs)
		if ok {
			assert.InDelta(t, mean, got, 1e-9)
			assert.LessOrEqual(t, std, MaxRelativeStd*mean)
		} else {
			assert.Greater(t, std, MaxRelativeStd*mean)
		}
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), std, 1e-9)

	_, std = meanStd([]float64{4})
	assert.Zero(t, std)
}

func TestNumericConsensusWithConfidence(t *testing.T) {
	got, ok := NumericConsensusWithConfidence(model.Strings("1-10", "2-20", "2-21", "1-50")).Get()
	require.True(t, ok)
	assert.InDelta(t, 20.5, got, 1e-9)

	assert.False(t, NumericConsensusWithConfidence(model.Strings("3-10", "3-30", "1-20")).Valid())
	assert.False(t, NumericConsensusWithConfidence(model.Strings("x", "10")).Valid())
	assert.False(t, NumericConsensusWithConfidence(model.Strings("2-0", "1-12")).Valid())
	assert.False(t, NumericConsensusWithConfidence([]model.Value{model.Number(2), model.Missing()}).Valid())
}

func TestModeNumeric(t *testing.T) {
	assert.Equal(t, model.Some(5.0), ModeNumeric(model.Numbers(5, 7, 7, 5, 0, 0, 0)))
	assert.Equal(t, model.Some(4.0), ModeNumeric(model.Strings("3", "4", "4")))
	assert.Equal(t, model.Some(8.0), ModeNumeric(model.Numbers(8)))
	assert.Equal(t, model.None[float64](), ModeNumeric(model.Numbers(0)))
	assert.Equal(t, model.None[float64](), ModeNumeric(nil))
	assert.Equal(t, model.None[float64](), ModeNumeric(model.Strings("NaN", "nan")))
	assert.Equal(t, model.Some(3.0), ModeNumeric(model.Strings("+Inf", "3")))
}

func TestApply_NonFiniteText(t *testing.T) {
	got, err := Apply(Numeric, model.Strings("NaN", "-Inf"))
	require.NoError(t, err)
	assert.False(t, got.Valid())
}
