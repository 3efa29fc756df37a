// Package jsonvalue models a JSON document as an explicit tagged union of
// objects, arrays, strings and other scalars. Objects keep their key order
// and non-string scalars keep their original literal, so a document can be
// rebuilt with the same shape and bytes after its strings are rewritten.
package jsonvalue
