package collapse

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/shipdata/internal/model"
)

func TestApply(t *testing.T) {
	times := model.Strings("2021-05-01", "2020-01-02T03:04:05Z")

	tests := []struct {
		rule   Rule
		values []model.Value
		want   model.Optional[string]
	}{
		{Numeric, model.Numbers(10, 10), model.Some("10")},
		{Numeric, model.Numbers(10, 50), model.None[string]()},
		{NumericConfidence, model.Strings("2-20.5", "1-3"), model.Some("20.5")},
		{ModeNumber, model.Numbers(3, 3, 4), model.Some("3")},
		{ModeText, model.Strings("a", "b", "b"), model.Some("B")},
		{Concat, model.Strings("b", "a"), model.Some("a, b")},
		{EarliestTime, times, model.Some("2020-01-02T03:04:05Z")},
		{LatestTime, times, model.Some("2021-05-01T00:00:00Z")},
		{HighestConfidence, nil, model.Some("1")},
	}
	for _, tt := range tests {
		t.Run(string(tt.rule), func(t *testing.T) {
			got, err := Apply(tt.rule, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_UnknownRule(t *testing.T) {
	_, err := Apply(Rule("bogus"), nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownRule))
}

func TestParseRule(t *testing.T) {
	for _, r := range Rules {
		got, err := ParseRule(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRule("median")
	assert.True(t, eris.Is(err, ErrUnknownRule))
}
