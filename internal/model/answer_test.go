package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{"string", `"residential"`, TextValue("residential")},
		{"number", `3`, NumberValue(3)},
		{"float", `2.5`, NumberValue(2.5)},
		{"bool", `true`, BoolValue(true)},
		{"list", `["kitchen","bathroom"]`, ListValue([]string{"kitchen", "bathroom"})},
		{"empty string", `""`, TextValue("")},
		{"empty list", `[]`, ListValue([]string{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseValue(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseValue(json.RawMessage(`{"nested":"object"}`))
	assert.Error(t, err)
	_, err = ParseValue(json.RawMessage(`[1,2,3]`))
	assert.Error(t, err)
}

func TestMarshalWireRoundTrip(t *testing.T) {
	values := []AnswerValue{
		TextValue("weekly"),
		NumberValue(4),
		BoolValue(false),
		ListValue([]string{"bedroom"}),
	}
	for _, v := range values {
		parsed, err := ParseValue(v.MarshalWire())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, TextValue("").IsEmpty())
	assert.True(t, ListValue(nil).IsEmpty())
	assert.True(t, AnswerValue{}.IsEmpty())

	assert.False(t, TextValue("x").IsEmpty())
	assert.False(t, ListValue([]string{"x"}).IsEmpty())
	// Zero and false are real answers
	assert.False(t, NumberValue(0).IsEmpty())
	assert.False(t, BoolValue(false).IsEmpty())
}

func TestEqualsString(t *testing.T) {
	assert.True(t, TextValue("house").EqualsString("house"))
	assert.False(t, TextValue("house").EqualsString("office"))
	assert.True(t, NumberValue(3).EqualsString("3"))
	assert.True(t, BoolValue(true).EqualsString("true"))
	assert.False(t, ListValue([]string{"house"}).EqualsString("house"))
}

func TestContainsString(t *testing.T) {
	v := ListValue([]string{"kitchen", "bathroom"})
	assert.True(t, v.ContainsString("kitchen"))
	assert.False(t, v.ContainsString("garage"))
	assert.True(t, TextValue("kitchen").ContainsString("kitchen"))
	assert.False(t, NumberValue(1).ContainsString("1"))
}

func TestAsList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ListValue([]string{"a", "b"}).AsList())
	assert.Equal(t, []string{"solo"}, TextValue("solo").AsList())
	assert.Nil(t, TextValue("").AsList())
	assert.Nil(t, BoolValue(true).AsList())
}

func TestAnswerSetAccessors(t *testing.T) {
	set := AnswerSet{
		"service-type": TextValue("residential"),
		"rooms":        ListValue([]string{"kitchen"}),
		"pets":         BoolValue(true),
		"bedrooms":     NumberValue(3),
	}

	assert.Equal(t, "residential", set.StringAt("service-type"))
	assert.Equal(t, "", set.StringAt("rooms"))
	assert.Equal(t, "", set.StringAt("missing"))

	assert.Equal(t, []string{"kitchen"}, set.ListAt("rooms"))
	assert.Nil(t, set.ListAt("missing"))

	assert.True(t, set.BoolAt("pets"))
	assert.False(t, set.BoolAt("service-type"))
	assert.False(t, set.BoolAt("missing"))

	assert.Equal(t, 3.0, set.NumberAt("bedrooms"))
	assert.Zero(t, set.NumberAt("missing"))
}
