// Package tree translates every string leaf of a JSON document while keeping
// the document's shape. Leaves are translated concurrently through a bounded
// pool and each leaf degrades on its own: a structured translation is used
// when the model followed the schema, its raw reply when it did not, and the
// original text when the call failed.
package tree
