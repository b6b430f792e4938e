package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_ZeroIsMissing(t *testing.T) {
	var o Optional[string]
	_, ok := o.Get()
	assert.False(t, ok)
	assert.False(t, o.Valid())
	assert.Equal(t, "def", o.OrElse("def"))
}

func TestOptional_Some(t *testing.T) {
	o := Some(4.5)
	v, ok := o.Get()
	require.True(t, ok)
	assert.InDelta(t, 4.5, v, 1e-9)
	assert.InDelta(t, 4.5, o.OrElse(1), 1e-9)
}

func TestOptional_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[int]    `json:"b"`
	}{A: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(data))

	var out struct {
		A Optional[string] `json:"a"`
		B Optional[int]    `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":3}`), &out))
	assert.False(t, out.A.Valid())
	assert.Equal(t, 3, out.B.OrElse(0))
}

func TestValue_IsMissing(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, String("").IsMissing())
	assert.True(t, String("   ").IsMissing())
	assert.True(t, Number(math.NaN()).IsMissing())
	assert.False(t, String("a").IsMissing())
	assert.False(t, Number(0).IsMissing())
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "", Missing().Text())
	assert.Equal(t, "abc", String("abc").Text())
	assert.Equal(t, "12", Number(12).Text())
	assert.Equal(t, "12.5", Number(12.5).Text())
	assert.Equal(t, "-3", Number(-3).Text())
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var vs []Value
	require.NoError(t, json.Unmarshal([]byte(`["a", 1.5, null]`), &vs))
	require.Len(t, vs, 3)
	assert.Equal(t, String("a"), vs[0])
	assert.Equal(t, Number(1.5), vs[1])
	assert.Equal(t, Missing(), vs[2])

	err := json.Unmarshal([]byte(`[true]`), &vs)
	assert.Error(t, err)
}

func TestValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Value{String("a"), Number(2), Missing()})
	require.NoError(t, err)
	assert.JSONEq(t, `["a", 2, null]`, string(data))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, []Value{String("a"), String("b")}, Strings("a", "b"))
	assert.Equal(t, []Value{Number(1), Number(2)}, Numbers(1, 2))
}
