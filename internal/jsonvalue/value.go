package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindOther Kind = iota
	KindObject
	KindArray
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is one key/value pair of an object
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is the JSON null.
type Value struct {
	kind    Kind
	members []Member
	elems   []Value
	str     string
	raw     []byte // literal of an Other scalar, nil means null
}

// Object creates an object value. Later duplicates of a key replace the
// earlier value but keep its position.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Array creates an array value
func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: append([]Value(nil), elems...)}
}

// String creates a string value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Null returns the JSON null
func Null() Value {
	return Value{kind: KindOther}
}

// Bool creates a boolean scalar
func Bool(b bool) Value {
	return Value{kind: KindOther, raw: []byte(strconv.FormatBool(b))}
}

// Number creates a numeric scalar from its JSON literal, e.g. "3" or "1e9".
func Number(literal string) (Value, error) {
	b := []byte(literal)
	if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) || b[len(b)-1] < '0' || b[len(b)-1] > '9' || !json.Valid(b) {
		return Value{}, fmt.Errorf("invalid number literal %q", literal)
	}
	return Value{kind: KindOther, raw: []byte(literal)}, nil
}

// Kind returns the variant of v
func (v Value) Kind() Kind {
	return v.kind
}

// IsContainer reports whether v is an object or an array
func (v Value) IsContainer() bool {
	return v.kind == KindObject || v.kind == KindArray
}

// Members returns a copy of the object members, nil for other kinds
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return append([]Member{}, v.members...)
}

// Len returns the number of members or elements of a container
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Get returns the member value for key
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Elems returns a copy of the array elements, nil for other kinds
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value{}, v.elems...)
}

// Str returns the text of a string value
func (v Value) Str() string {
	return v.str
}

// Raw returns the JSON literal of an Other scalar
func (v Value) Raw() []byte {
	if v.kind != KindOther {
		return nil
	}
	if v.raw == nil {
		return []byte("null")
	}
	return append([]byte(nil), v.raw...)
}

// MarshalJSON writes the value with object order kept and without HTML escaping
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON parses data with Parse
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, m.Key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindString:
		encodeString(buf, v.str)
	case KindOther:
		if v.raw == nil {
			buf.WriteString("null")
		} else {
			buf.Write(v.raw)
		}
	default:
		return fmt.Errorf("cannot encode %s", v.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode cannot fail for a string; it appends a newline we drop.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
