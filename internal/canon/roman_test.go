package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoman(t *testing.T) {
	valid := map[string]int{
		"I": 1, "IV": 4, "IX": 9, "XIV": 14, "XXXIX": 39,
		"XL": 40, "XC": 90, "CD": 400, "MCMXCIV": 1994, "MMMCMXCIX": 3999,
	}
	for in, want := range valid {
		got, ok := ParseRoman(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "IIII", "VX", "IC", "iv", "BOAT", "MMMM"} {
		_, ok := ParseRoman(in)
		assert.False(t, ok, in)
	}
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"BOAT", "IX"}, splitTokens("BOAT IX"))
	assert.Equal(t, []string{"A", "B"}, splitTokens("A-B"))
	assert.Equal(t, []string{"ABC", "X"}, splitTokens("ABC.X"))
	assert.Equal(t, []string{"AB.X"}, splitTokens("AB.X"))
	assert.Equal(t, []string{"BOAT", ""}, splitTokens("BOAT "))
	assert.Equal(t, []string{""}, splitTokens(""))
}
