package tree

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/jsonvalue"
	"codeberg.org/snonux/jsonlingo/internal/translation"
)

// StringTranslator translates one string; *translation.Translator implements it
type StringTranslator interface {
	TranslateString(ctx context.Context, text, language string) (translation.Result, error)
}

// Policy decides what a failed leaf does to the whole document
type Policy int

const (
	// PolicyDegrade keeps a failed leaf's original text
	PolicyDegrade Policy = iota
	// PolicyStrict fails the whole document on the first failed leaf
	PolicyStrict
)

// DefaultConcurrency is the number of leaves translated at once
const DefaultConcurrency = 4

// Options configures a TreeTranslator
type Options struct {
	Concurrency     int
	Policy          Policy
	DefaultLanguage string
	Logger          *slog.Logger
}

// LeafFailure records a leaf that kept its original text
type LeafFailure struct {
	Path string
	Err  error
}

// Report counts how each leaf of a document was resolved
type Report struct {
	Leaves     int           `json:"leaves"`
	Structured int           `json:"structured"`
	Raw        int           `json:"raw"`
	Original   int           `json:"original"`
	Failures   []LeafFailure `json:"-"`
}

// TreeTranslator translates all string leaves of a document
type TreeTranslator struct {
	tr   StringTranslator
	opts Options
}

// New creates a TreeTranslator
func New(tr StringTranslator, opts Options) *TreeTranslator {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = translation.DefaultLanguage
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &TreeTranslator{tr: tr, opts: opts}
}

// Translate returns a copy of v with every string leaf translated into language
func (t *TreeTranslator) Translate(ctx context.Context, v jsonvalue.Value, language string) (jsonvalue.Value, error) {
	out, _, err := t.TranslateWithReport(ctx, v, language)
	return out, err
}

// TranslateWithReport is Translate plus a per-source count of the leaves.
// It only fails when the context ends, the provider rejects the credentials,
// or, under PolicyStrict, when any leaf fails. It never returns a partial tree.
func (t *TreeTranslator) TranslateWithReport(ctx context.Context, v jsonvalue.Value, language string) (jsonvalue.Value, Report, error) {
	if language == "" {
		language = t.opts.DefaultLanguage
	}

	leaves := jsonvalue.Strings(v)
	report := Report{Leaves: len(leaves)}
	if len(leaves) == 0 {
		return v, report, nil
	}

	resolutions := make([]Resolution, len(leaves))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Concurrency)

	for i, leaf := range leaves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := t.tr.TranslateString(gctx, leaf.Text, language)
			resolutions[i] = Resolve(leaf.Text, res, err)
			if err == nil {
				done.Add(1)
				return nil
			}

			switch {
			case apperrors.IsFatal(err):
				return err
			case gctx.Err() != nil:
				return gctx.Err()
			case t.opts.Policy == PolicyStrict:
				return fmt.Errorf("leaf %q: %w", leaf.Path, err)
			}

			t.opts.Logger.Warn("leaf kept original text", "path", leaf.Path, "language", language, "error", err)
			done.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return jsonvalue.Value{}, Report{}, canceledError(ctx, done.Load(), len(leaves))
		}
		return jsonvalue.Value{}, Report{}, err
	}
	if ctx.Err() != nil {
		return jsonvalue.Value{}, Report{}, canceledError(ctx, done.Load(), len(leaves))
	}

	texts := make([]string, len(leaves))
	for i, r := range resolutions {
		texts[i] = r.Text
		switch r.Source {
		case SourceStructured:
			report.Structured++
		case SourceRaw:
			report.Raw++
		case SourceOriginal:
			report.Original++
			report.Failures = append(report.Failures, LeafFailure{Path: leaves[i].Path, Err: r.Err})
		}
	}

	out, err := jsonvalue.ReplaceStrings(v, texts)
	if err != nil {
		return jsonvalue.Value{}, Report{}, apperrors.NewUnexpectedError("failed to rebuild document", err)
	}
	return out, report, nil
}

func canceledError(ctx context.Context, done int64, total int) error {
	return fmt.Errorf("translation stopped after %d of %d leaves: %w", done, total, ctx.Err())
}
