package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringsOrderAndPaths(t *testing.T) {
	v := mustParse(t, `{"title":"Hi","items":["a",{"label":"b"}],"count":3,"a/b":{"c~d":"e"}}`)

	want := []Leaf{
		{Path: "/title", Text: "Hi"},
		{Path: "/items/0", Text: "a"},
		{Path: "/items/1/label", Text: "b"},
		{Path: "/a~1b/c~0d", Text: "e"},
	}
	assert.Equal(t, want, Strings(v))
	assert.Equal(t, 4, CountStrings(v))
}

func TestStringsTopLevelString(t *testing.T) {
	assert.Equal(t, []Leaf{{Path: "", Text: "x"}}, Strings(String("x")))
	assert.Empty(t, Strings(mustParse(t, `{}`)))
	assert.Empty(t, Strings(mustParse(t, `[1,true,null]`)))
}

func TestReplaceStrings(t *testing.T) {
	v := mustParse(t, `{"title":"Hi","items":["a",{"label":"b"}],"count":3}`)

	out, err := ReplaceStrings(v, []string{"HELLO", "A", "B"})
	require.NoError(t, err)

	data, _ := json.Marshal(out)
	assert.Equal(t, `{"title":"HELLO","items":["A",{"label":"B"}],"count":3}`, string(data))

	// the input is untouched
	data, _ = json.Marshal(v)
	assert.Equal(t, `{"title":"Hi","items":["a",{"label":"b"}],"count":3}`, string(data))
}

func TestReplaceStringsCountMismatch(t *testing.T) {
	v := mustParse(t, `["a","b"]`)
	_, err := ReplaceStrings(v, []string{"x"})
	assert.Error(t, err)
	_, err = ReplaceStrings(v, []string{"x", "y", "z"})
	assert.Error(t, err)
}

func TestEqualAndSameShape(t *testing.T) {
	base := mustParse(t, `{"a":"x","b":[1,"y"]}`)

	tests := []struct {
		name      string
		other     string
		equal     bool
		sameShape bool
	}{
		{"identical", `{"a":"x","b":[1,"y"]}`, true, true},
		{"string changed", `{"a":"z","b":[1,"w"]}`, false, true},
		{"number changed", `{"a":"x","b":[2,"y"]}`, false, false},
		{"number reformatted", `{"a":"x","b":[1.0,"y"]}`, false, false},
		{"key order", `{"b":[1,"y"],"a":"x"}`, false, false},
		{"array length", `{"a":"x","b":[1]}`, false, false},
		{"kind changed", `{"a":1,"b":[1,"y"]}`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustParse(t, tt.other)
			assert.Equal(t, tt.equal, Equal(base, other))
			assert.Equal(t, tt.sameShape, SameShape(base, other))
		})
	}
}
