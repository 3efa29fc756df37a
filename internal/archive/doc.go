// Package archive sets directories of earlier translations aside.
package archive
