package record

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	for _, name := range []string{"name", "callsign", "gear", "gear_confidence", "imo", "owner", "numeric", "time_max", "max_confidence"} {
		r, err := ParseRule(name)
		require.NoError(t, err, name)
		assert.Equal(t, Rule(name), r)
	}

	_, err := ParseRule("median")
	assert.True(t, eris.Is(err, ErrUnknownRule))
}

func TestWithOverrides(t *testing.T) {
	rules, err := WithOverrides(DefaultRules(), map[string]string{
		"length": "mode_numeric",
		"hull":   "concat",
		"beam":   "numeric",
	})
	require.NoError(t, err)

	assert.Len(t, rules, len(DefaultRules())+2)
	for _, fr := range rules {
		if fr.Field == "length" {
			assert.Equal(t, Rule("mode_numeric"), fr.Rule)
		}
	}
	assert.Equal(t, FieldRule{Field: "beam", Rule: "numeric"}, rules[len(rules)-2])
	assert.Equal(t, FieldRule{Field: "hull", Rule: "concat"}, rules[len(rules)-1])

	base := DefaultRules()
	_, err = WithOverrides(base, map[string]string{"length": "concat"})
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), base)
}

func TestWithOverrides_Unknown(t *testing.T) {
	_, err := WithOverrides(DefaultRules(), map[string]string{"length": "median"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownRule))
	assert.Contains(t, err.Error(), "length")
}

func TestRuleIsGear(t *testing.T) {
	assert.True(t, RuleGear.IsGear())
	assert.True(t, RuleGearConfidence.IsGear())
	assert.False(t, RuleName.IsGear())
}
