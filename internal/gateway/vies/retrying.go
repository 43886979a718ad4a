package vies

import (
	"context"
	"errors"
	"time"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

type checker interface {
	CheckVAT(ctx context.Context, country, number string) (*Result, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingChecker behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingChecker retries registry lookups: the VIES service is known to shed
// load with 5xx responses during business hours.
type RetryingChecker struct {
	next    checker
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingChecker wraps a checker; returns nil when next is nil.
func NewRetryingChecker(next checker, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingChecker {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingChecker{next: next, logger: logger, retries: retries, cfg: cfg}
}

// CheckVAT retries the wrapped lookup on retryable failures with capped
// exponential backoff.
func (r *RetryingChecker) CheckVAT(ctx context.Context, country, number string) (*Result, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		result, err := r.next.CheckVAT(ctx, country, number)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("vies lookup retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable treats server-side and transport failures as transient;
// validation errors and definitive registry answers are not retried.
func isRetryable(err error) bool {
	if errors.Is(err, apperr.ErrInvalid) {
		return false
	}
	var ue *apperr.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status >= 500 || ue.Status == 429
	}
	// transport-level failure (connection refused, timeout)
	return errors.Is(err, apperr.ErrUpstream) || !errors.Is(err, context.Canceled)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
