package translation

import (
	"context"
	"errors"
	"fmt"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

// Translator translates single strings through a Generator
type Translator struct {
	gen Generator
}

// NewTranslator creates a new translator instance
func NewTranslator(gen Generator) *Translator {
	return &Translator{gen: gen}
}

// Provider returns the name of the underlying generator
func (t *Translator) Provider() string {
	return t.gen.Name()
}

// TranslateString asks the generator to translate text into language.
// A reply that does not match the requested schema is not an error: the
// Result then only carries the raw reply. Errors are service errors for
// provider or transport failures and unexpected errors for anything else.
func (t *Translator) TranslateString(ctx context.Context, text, language string) (res Result, err error) {
	if language == "" {
		language = DefaultLanguage
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = apperrors.NewUnexpectedError(fmt.Sprintf("panic during translation: %v", r), nil)
		}
	}()

	raw, err := t.gen.Generate(ctx, BuildSystemPrompt(language), BuildUserPrompt(text))
	if err != nil {
		return Result{}, classify(ctx, err)
	}

	return Result{
		Raw:        raw,
		Structured: ParseResponse(raw, language),
	}, nil
}

func classify(ctx context.Context, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if ctx.Err() != nil || apperrors.IsCanceled(err) {
		return apperrors.NewServiceError("translation call aborted", err)
	}
	return apperrors.NewUnexpectedError("translation call failed", err)
}
