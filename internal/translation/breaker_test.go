package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

type countingGenerator struct {
	calls int
	err   error
}

func (c *countingGenerator) Name() string { return "counting" }

func (c *countingGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "ok", nil
}

func TestBreakerGenerator_PassesThrough(t *testing.T) {
	inner := &countingGenerator{}
	b := NewBreakerGenerator(inner, 3, time.Minute)

	out, err := b.Generate(context.Background(), "s", "u")
	if err != nil || out != "ok" {
		t.Fatalf("Generate() = %q, %v", out, err)
	}
	if b.Name() != "counting" {
		t.Errorf("Name() = %q, want counting", b.Name())
	}
}

func TestBreakerGenerator_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &countingGenerator{err: apperrors.NewServiceError("503", nil)}
	b := NewBreakerGenerator(inner, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := b.Generate(context.Background(), "s", "u"); err == nil {
			t.Fatal("Expected an error")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.Generate(context.Background(), "s", "u")
	if !errors.Is(err, apperrors.ErrService) {
		t.Errorf("Expected service error from open breaker, got: %v", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected wrapped ErrOpenState, got: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner generator called %d times, want 3", inner.calls)
	}
}

func TestBreakerGenerator_IgnoresCancellation(t *testing.T) {
	inner := &countingGenerator{err: apperrors.NewServiceError("aborted", context.Canceled)}
	b := NewBreakerGenerator(inner, 1, time.Minute)

	for i := 0; i < 3; i++ {
		_, _ = b.Generate(context.Background(), "s", "u")
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
	if inner.calls != 3 {
		t.Errorf("inner generator called %d times, want 3", inner.calls)
	}
}

func TestBreakerGenerator_IgnoresNonServiceErrors(t *testing.T) {
	inner := &countingGenerator{err: apperrors.NewUnexpectedError("empty completion returned", nil)}
	b := NewBreakerGenerator(inner, 1, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := b.Generate(context.Background(), "s", "u")
		if !errors.Is(err, apperrors.ErrUnexpected) {
			t.Fatalf("Expected the unexpected error to pass through, got: %v", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
	if inner.calls != 3 {
		t.Errorf("inner generator called %d times, want 3", inner.calls)
	}
}

func TestBreakerGenerator_HalfOpenRecovers(t *testing.T) {
	inner := &countingGenerator{err: apperrors.NewServiceError("503", nil)}
	b := NewBreakerGenerator(inner, 1, 10*time.Millisecond)

	_, _ = b.Generate(context.Background(), "s", "u")
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	time.Sleep(20 * time.Millisecond)
	inner.err = nil

	out, err := b.Generate(context.Background(), "s", "u")
	if err != nil || out != "ok" {
		t.Fatalf("Generate() after cooldown = %q, %v", out, err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}
