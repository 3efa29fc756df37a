package jsonvalue

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestParseRoundTripKeepsOrderAndLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"empty array", `[]`},
		{"key order", `{"z":"last","a":"first","m":{"y":1,"b":2}}`},
		{"number literals", `[1.0,1e9,-0,12345678901234567890,3.14159265358979323846]`},
		{"scalars", `{"t":true,"f":false,"n":null}`},
		{"html characters", `{"html":"<b>a & b</b>"}`},
		{"top-level string", `"hello"`},
		{"unicode", `{"ar":"مرحبا","emoji":"😀"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.input)
			out, err := v.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(out))
		})
	}
}

func TestParseKinds(t *testing.T) {
	v := mustParse(t, `{"title":"Hi","items":["a",{"label":"b"}],"count":3,"ok":true,"none":null}`)
	require.Equal(t, KindObject, v.Kind())
	assert.Equal(t, 5, v.Len())

	title, ok := v.Get("title")
	require.True(t, ok)
	assert.Equal(t, KindString, title.Kind())
	assert.Equal(t, "Hi", title.Str())

	items, _ := v.Get("items")
	assert.Equal(t, KindArray, items.Kind())
	assert.Equal(t, 2, items.Len())

	count, _ := v.Get("count")
	assert.Equal(t, KindOther, count.Kind())
	assert.Equal(t, "3", string(count.Raw()))

	none, _ := v.Get("none")
	assert.Equal(t, "null", string(none.Raw()))

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ``},
		{"truncated object", `{"a":`},
		{"bad literal", `{"a":tru}`},
		{"trailing value", `{} {}`},
		{"missing colon", `{"a" "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(`[1] 2`))
	assert.True(t, errors.Is(err, ErrTrailingData))
}

func TestDuplicateKeysKeepFirstPosition(t *testing.T) {
	v := mustParse(t, `{"a":"1","b":"2","a":"3"}`)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"3","b":"2"}`, string(out))
}

func TestAccessorsReturnCopies(t *testing.T) {
	v := Object(Member{Key: "k", Value: String("v")})
	members := v.Members()
	members[0].Value = String("changed")

	got, _ := v.Get("k")
	assert.Equal(t, "v", got.Str())

	arr := Array(String("x"))
	elems := arr.Elems()
	elems[0] = String("y")
	assert.Equal(t, "x", arr.Elems()[0].Str())
}

func TestNumber(t *testing.T) {
	for _, lit := range []string{"0", "-1", "2.5", "1e10", "1E-3"} {
		v, err := Number(lit)
		require.NoError(t, err, lit)
		assert.Equal(t, lit, string(v.Raw()))
	}
	for _, lit := range []string{"", "abc", `"3"`, "true", "1 ", "01"} {
		_, err := Number(lit)
		assert.Error(t, err, lit)
	}
}

func TestReadKeepsOrder(t *testing.T) {
	v, err := Read(strings.NewReader(`{"z":{"y":"1","b":"2"},"a":[{"k":1e3}]}`))
	require.NoError(t, err)
	out, _ := json.Marshal(v)
	assert.Equal(t, `{"z":{"y":"1","b":"2"},"a":[{"k":1e3}]}`, string(out))

	_, err = Read(strings.NewReader(`{"a":1} {}`))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestUnmarshalJSONInsideStruct(t *testing.T) {
	var body struct {
		Document Value  `json:"document"`
		Lang     string `json:"target_language"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"document":{"b":"x","a":[1]},"target_language":"French"}`), &body))
	assert.Equal(t, "French", body.Lang)
	out, _ := json.Marshal(body.Document)
	assert.Equal(t, `{"b":"x","a":[1]}`, string(out))
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.Equal(t, KindOther, v.Kind())
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
