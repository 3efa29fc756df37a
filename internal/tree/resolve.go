package tree

import (
	"fmt"

	"codeberg.org/snonux/jsonlingo/internal/translation"
)

// Source tells which tier produced a leaf's final text
type Source int

const (
	SourceStructured Source = iota
	SourceRaw
	SourceOriginal
)

func (s Source) String() string {
	switch s {
	case SourceStructured:
		return "structured"
	case SourceRaw:
		return "raw"
	case SourceOriginal:
		return "original"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Resolution is the final text of one leaf
type Resolution struct {
	Text   string
	Source Source
	Err    error
}

// Resolve picks a leaf's text from a translation outcome: the structured
// translation, else the raw reply, else the original when the call failed.
func Resolve(original string, res translation.Result, err error) Resolution {
	if err != nil {
		return Resolution{Text: original, Source: SourceOriginal, Err: err}
	}
	if res.Structured != nil {
		return Resolution{Text: res.Structured.Translation, Source: SourceStructured}
	}
	return Resolution{Text: res.Raw, Source: SourceRaw}
}
