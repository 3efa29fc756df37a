package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

// BreakerGenerator stops calling a failing provider for a cooldown period so
// that a dead service costs one error per leaf instead of one timeout.
type BreakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerGenerator wraps next in a circuit breaker that opens after
// failures consecutive errors and probes again after cooldown.
func NewBreakerGenerator(next Generator, failures uint32, cooldown time.Duration) *BreakerGenerator {
	if failures == 0 {
		failures = 1
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Only upstream failures count. A caller giving up or a malformed
		// completion says nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsCanceled(err) || !errors.Is(err, apperrors.ErrService)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "provider", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerGenerator{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *BreakerGenerator) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *BreakerGenerator) State() gobreaker.State {
	return b.cb.State()
}

// Generate calls the wrapped generator unless the breaker is open
func (b *BreakerGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, systemPrompt, userPrompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperrors.NewServiceError(fmt.Sprintf("%s unavailable, circuit breaker %s", b.Name(), b.cb.State()), err)
		}
		return "", err
	}

	text, ok := out.(string)
	if !ok {
		return "", apperrors.NewUnexpectedError(fmt.Sprintf("generator returned %T", out), nil)
	}
	return text, nil
}
