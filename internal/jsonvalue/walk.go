package jsonvalue

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Leaf is a string leaf together with its JSON pointer
type Leaf struct {
	Path string
	Text string
}

// Strings returns every string leaf of v in document order (pre-order,
// object members and array elements front to back).
func Strings(v Value) []Leaf {
	var leaves []Leaf
	collect(v, "", &leaves)
	return leaves
}

// CountStrings returns the number of string leaves in v
func CountStrings(v Value) int {
	switch v.kind {
	case KindObject:
		n := 0
		for _, m := range v.members {
			n += CountStrings(m.Value)
		}
		return n
	case KindArray:
		n := 0
		for _, e := range v.elems {
			n += CountStrings(e)
		}
		return n
	case KindString:
		return 1
	default:
		return 0
	}
}

func collect(v Value, path string, leaves *[]Leaf) {
	switch v.kind {
	case KindObject:
		for _, m := range v.members {
			collect(m.Value, path+"/"+escapePointer(m.Key), leaves)
		}
	case KindArray:
		for i, e := range v.elems {
			collect(e, path+"/"+strconv.Itoa(i), leaves)
		}
	case KindString:
		*leaves = append(*leaves, Leaf{Path: path, Text: v.str})
	}
}

// escapePointer applies RFC 6901 escaping to a pointer segment
func escapePointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

// ReplaceStrings returns a copy of v whose i-th string leaf, in the order of
// Strings, is replaced by texts[i]. Everything else is copied unchanged.
func ReplaceStrings(v Value, texts []string) (Value, error) {
	next := 0
	out := replace(v, texts, &next)
	if next != len(texts) {
		return Value{}, fmt.Errorf("document has %d string leaves, got %d replacements", next, len(texts))
	}
	return out, nil
}

func replace(v Value, texts []string, next *int) Value {
	switch v.kind {
	case KindObject:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			members[i] = Member{Key: m.Key, Value: replace(m.Value, texts, next)}
		}
		return Value{kind: KindObject, members: members}
	case KindArray:
		elems := make([]Value, len(v.elems))
		for i, e := range v.elems {
			elems[i] = replace(e, texts, next)
		}
		return Value{kind: KindArray, elems: elems}
	case KindString:
		i := *next
		*next++
		if i < len(texts) {
			return String(texts[i])
		}
		return v
	default:
		return v
	}
}

// Equal reports whether a and b are the same document, including key order
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindString:
		return a.str == b.str
	default:
		return bytes.Equal(a.Raw(), b.Raw())
	}
}

// SameShape reports whether a and b have identical keys, key order, array
// lengths, kinds and Other literals. String values may differ.
func SameShape(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !SameShape(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !SameShape(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindString:
		return true
	default:
		return bytes.Equal(a.Raw(), b.Raw())
	}
}
