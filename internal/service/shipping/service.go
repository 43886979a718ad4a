// Package shipping turns cart payloads into curated shipping options.
package shipping

import (
	"context"
	"fmt"

	"storefront-api/internal/apperr"
	"storefront-api/internal/domain"
	"storefront-api/internal/gateway/fedex"
	"storefront-api/internal/logx"
)

type rater interface {
	Quote(ctx context.Context, sh fedex.Shipment) ([]domain.RateQuote, error)
}

// Config stores the quote pipeline settings.
type Config struct {
	// Configured mirrors the presence of required carrier credentials.
	Configured    bool
	OriginCountry string
	// FallbackEnabled turns on the flat fallback rate when the upstream
	// yields no usable quote at all.
	FallbackEnabled bool
	FallbackAmount  float64
}

// Fallback rate surfaced when enabled and the upstream returned nothing usable.
const (
	fallbackID   = "FALLBACK_STANDARD"
	fallbackName = "Standard Shipping (fallback)"
)

// Service runs the quote pipeline: expansion, internationality, rate fetch,
// curation, fallback.
type Service struct {
	rater  rater
	cfg    Config
	logger logx.Logger
}

// NewService creates a shipping quote service.
func NewService(r rater, cfg Config, logger logx.Logger) *Service {
	return &Service{rater: r, cfg: cfg, logger: logger}
}

// Request is one quote request extracted from the cart payload.
type Request struct {
	Destination domain.Address
	Items       []domain.LineItem
	StatedTotal *float64
}

// Result is a successful quote outcome. Warning is set when the fallback
// flat rate substituted for an empty upstream result.
type Result struct {
	Rates   []domain.CuratedRate
	Warning string
}

// Quote produces curated shipping options for a cart. Errors are typed for
// the transport layer to downgrade into soft responses: ErrNotConfigured,
// ErrInvalid, ErrAuth, ErrUpstream, ErrNoRates.
func (s *Service) Quote(ctx context.Context, req Request) (Result, error) {
	if !s.cfg.Configured {
		return Result{}, fmt.Errorf("shipping: %w", apperr.ErrNotConfigured)
	}

	dest := req.Destination.Normalize()
	if err := dest.Validate(); err != nil {
		return Result{}, fmt.Errorf("shipping: destination: %w", err)
	}

	packages := domain.ExpandPackages(req.Items)
	declared := domain.DeclaredTotal(req.Items, req.StatedTotal)
	international := domain.IsInternational(s.cfg.OriginCountry, dest.Country)

	quotes, err := s.rater.Quote(ctx, fedex.Shipment{
		Destination:   dest,
		Packages:      packages,
		DeclaredTotal: declared,
		International: international,
	})
	if err != nil {
		return Result{}, fmt.Errorf("shipping: %w", err)
	}

	rates := curate(quotes, international)
	if len(rates) > 0 {
		s.logger.Info("shipping quote served",
			logx.String("country", dest.Country),
			logx.Bool("international", international),
			logx.Int("upstream_quotes", len(quotes)),
			logx.Int("rates", len(rates)),
		)
		return Result{Rates: rates}, nil
	}

	if s.cfg.FallbackEnabled {
		s.logger.Warn("no upstream rates, applying fallback flat rate",
			logx.String("country", dest.Country),
			logx.Float64("amount", s.cfg.FallbackAmount),
		)
		return Result{
			Rates:   []domain.CuratedRate{{ID: fallbackID, Name: fallbackName, Cost: s.cfg.FallbackAmount}},
			Warning: "carrier returned no rates, fallback flat rate applied",
		}, nil
	}

	return Result{}, fmt.Errorf("shipping: %w", apperr.ErrNoRates)
}
