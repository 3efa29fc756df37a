package tree

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/jsonvalue"
	"codeberg.org/snonux/jsonlingo/internal/testutil"
	"codeberg.org/snonux/jsonlingo/internal/translation"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTreeTranslator(gen *testutil.MockGenerator, opts Options) *TreeTranslator {
	opts.Logger = quietLogger
	return New(translation.NewTranslator(gen), opts)
}

// failingTranslator fails every leaf with err
type failingTranslator struct {
	err error
}

func (f failingTranslator) TranslateString(ctx context.Context, text, language string) (translation.Result, error) {
	return translation.Result{}, f.err
}

func TestTranslate_NestedStructure(t *testing.T) {
	gen := &testutil.MockGenerator{Responses: map[string]string{
		"Hi": testutil.StructuredReply("arabic_translation", "HELLO"),
		"a":  testutil.StructuredReply("arabic_translation", "A"),
		"b":  testutil.StructuredReply("arabic_translation", "B"),
	}}
	tt := newTreeTranslator(gen, Options{})

	in := testutil.MustParse(t, `{"title": "Hi", "items": ["a", {"label": "b"}], "count": 3}`)
	out, report, err := tt.TranslateWithReport(context.Background(), in, "Arabic")
	require.NoError(t, err)

	testutil.AssertJSON(t, out, `{"title":"HELLO","items":["A",{"label":"B"}],"count":3}`)
	assert.Equal(t, Report{Leaves: 3, Structured: 3}, report)
	assert.ElementsMatch(t, []string{"Hi", "a", "b"}, gen.Calls())

	// the input is untouched
	testutil.AssertJSON(t, in, `{"title":"Hi","items":["a",{"label":"b"}],"count":3}`)
}

func TestTranslate_StructuredExtraction(t *testing.T) {
	gen := &testutil.MockGenerator{Responses: map[string]string{
		"hello": `{"ar_translation": "X", "translation_notes": "n"}`,
	}}

	out, err := newTreeTranslator(gen, Options{}).Translate(context.Background(), testutil.MustParse(t, `{"a": "hello"}`), "Arabic")
	require.NoError(t, err)
	testutil.AssertJSON(t, out, `{"a":"X"}`)
}

func TestTranslate_RawFallbackOnSchemaMismatch(t *testing.T) {
	gen := &testutil.MockGenerator{Responses: map[string]string{"hello": "bonjour"}}

	out, report, err := newTreeTranslator(gen, Options{}).TranslateWithReport(context.Background(), testutil.MustParse(t, `{"a": "hello"}`), "French")
	require.NoError(t, err)
	testutil.AssertJSON(t, out, `{"a":"bonjour"}`)
	assert.Equal(t, 1, report.Raw)
}

func TestTranslate_FullDegradationReturnsInput(t *testing.T) {
	in := testutil.MustParse(t, `{"a":"x","b":["y",{"c":"z","n":1.50}],"e":"","t":true}`)
	tt := New(failingTranslator{err: apperrors.NewServiceError("503", nil)}, Options{Logger: quietLogger})

	out, report, err := tt.TranslateWithReport(context.Background(), in, "German")
	require.NoError(t, err)
	assert.True(t, jsonvalue.Equal(in, out))
	assert.Equal(t, 4, report.Leaves)
	assert.Equal(t, 4, report.Original)
	require.Len(t, report.Failures, 4)
	assert.Equal(t, "/a", report.Failures[0].Path)
	assert.Equal(t, "/b/1/c", report.Failures[2].Path)
	assert.True(t, errors.Is(report.Failures[0].Err, apperrors.ErrService))
}

func TestTranslate_UnexpectedErrorDegrades(t *testing.T) {
	gen := &testutil.MockGenerator{Errors: map[string]error{"b": errors.New("weird")}}

	out, report, err := newTreeTranslator(gen, Options{}).TranslateWithReport(context.Background(), testutil.MustParse(t, `["a","b"]`), "French")
	require.NoError(t, err)
	testutil.AssertJSON(t, out, `["mock translation of a","b"]`)
	assert.Equal(t, 1, report.Original)
	assert.True(t, errors.Is(report.Failures[0].Err, apperrors.ErrUnexpected))
}

func TestTranslate_EmptyDocuments(t *testing.T) {
	for _, doc := range []string{`{}`, `[]`, `{"a":[],"b":{}}`, `[1,null,false]`, `42`} {
		t.Run(doc, func(t *testing.T) {
			gen := &testutil.MockGenerator{}
			out, err := newTreeTranslator(gen, Options{}).Translate(context.Background(), testutil.MustParse(t, doc), "Arabic")
			require.NoError(t, err)
			testutil.AssertJSON(t, out, doc)
			assert.Empty(t, gen.Calls())
		})
	}
}

func TestTranslate_OtherScalarsPassThrough(t *testing.T) {
	doc := `{"big":12345678901234567890,"f":1.10,"e":-2E+3,"t":true,"n":null,"s":"x"}`
	gen := &testutil.MockGenerator{Responses: map[string]string{"x": testutil.StructuredReply("translation", "y")}}

	out, err := newTreeTranslator(gen, Options{}).Translate(context.Background(), testutil.MustParse(t, doc), "Arabic")
	require.NoError(t, err)
	testutil.AssertJSON(t, out, `{"big":12345678901234567890,"f":1.10,"e":-2E+3,"t":true,"n":null,"s":"y"}`)
	assert.Equal(t, []string{"x"}, gen.Calls())
}

func TestTranslate_ShapePreserved(t *testing.T) {
	doc := `{"a":[["x",{"y":"z"}],[]],"b":{"c":{"d":["e",1,"f"]}},"g":"h","i":[null,"j"]}`
	in := testutil.MustParse(t, doc)

	out, err := newTreeTranslator(&testutil.MockGenerator{}, Options{Concurrency: 8}).Translate(context.Background(), in, "Arabic")
	require.NoError(t, err)
	assert.True(t, jsonvalue.SameShape(in, out))
	for _, leaf := range jsonvalue.Strings(out) {
		assert.Contains(t, leaf.Text, "mock translation of ")
	}
}

func TestTranslate_TopLevelString(t *testing.T) {
	out, err := newTreeTranslator(&testutil.MockGenerator{}, Options{}).Translate(context.Background(), jsonvalue.String("hi"), "Arabic")
	require.NoError(t, err)
	testutil.AssertJSON(t, out, `"mock translation of hi"`)
}

func TestTranslate_EmptyStringIsTranslated(t *testing.T) {
	gen := &testutil.MockGenerator{}
	_, err := newTreeTranslator(gen, Options{}).Translate(context.Background(), testutil.MustParse(t, `{"a":""}`), "Arabic")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, gen.Calls())
}

func TestTranslate_SequentialOrder(t *testing.T) {
	gen := &testutil.MockGenerator{}
	in := testutil.MustParse(t, `{"z":"1","a":["2",{"m":"3"}],"b":"4"}`)

	_, err := newTreeTranslator(gen, Options{Concurrency: 1}).Translate(context.Background(), in, "Arabic")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, gen.Calls())
}

func TestTranslate_BoundedConcurrency(t *testing.T) {
	gen := &testutil.MockGenerator{Delay: 20 * time.Millisecond}
	elems := make([]jsonvalue.Value, 12)
	for i := range elems {
		elems[i] = jsonvalue.String(string(rune('a' + i)))
	}
	in := jsonvalue.Array(elems...)

	out, err := newTreeTranslator(gen, Options{Concurrency: 3}).Translate(context.Background(), in, "Arabic")
	require.NoError(t, err)
	assert.LessOrEqual(t, gen.MaxInFlight(), 3)
	assert.Len(t, gen.Calls(), 12)

	// results land in their own slot whatever the completion order
	for i, e := range out.Elems() {
		assert.Equal(t, "mock translation of "+string(rune('a'+i)), e.Str())
	}
}

func TestTranslate_StrictPolicyFailsWholeDocument(t *testing.T) {
	gen := &testutil.MockGenerator{Errors: map[string]error{"b": apperrors.NewServiceError("503", nil)}}

	out, report, err := newTreeTranslator(gen, Options{Policy: PolicyStrict}).TranslateWithReport(context.Background(), testutil.MustParse(t, `{"a":"x","b":"b"}`), "Arabic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrService))
	assert.Contains(t, err.Error(), `"/b"`)
	assert.Equal(t, jsonvalue.KindOther, out.Kind())
	assert.Equal(t, Report{}, report)
}

func TestTranslate_FatalErrorAbortsOnce(t *testing.T) {
	tt := New(failingTranslator{err: apperrors.NewFatalServiceError("invalid API key", nil)}, Options{Logger: quietLogger})

	_, err := tt.Translate(context.Background(), testutil.MustParse(t, `["a","b","c"]`), "Arabic")
	require.Error(t, err)
	assert.True(t, apperrors.IsFatal(err))
}

func TestTranslate_CancellationReturnsNoTree(t *testing.T) {
	gen := &testutil.MockGenerator{Delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	out, err := newTreeTranslator(gen, Options{Concurrency: 2}).Translate(ctx, testutil.MustParse(t, `["a","b","c","d"]`), "Arabic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, jsonvalue.KindOther, out.Kind())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestTranslate_DefaultLanguage(t *testing.T) {
	rec := &recordingTranslator{}
	tt := New(rec, Options{DefaultLanguage: "French", Logger: quietLogger})

	_, err := tt.Translate(context.Background(), jsonvalue.String("x"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"French"}, rec.languages)
}

type recordingTranslator struct {
	languages []string
}

func (r *recordingTranslator) TranslateString(ctx context.Context, text, language string) (translation.Result, error) {
	r.languages = append(r.languages, language)
	return translation.Result{Raw: text}, nil
}
