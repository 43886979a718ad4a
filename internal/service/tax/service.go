// Package tax computes cart tax lines for checkout.
package tax

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront-api/internal/domain"
	"storefront-api/internal/gateway/vies"
	"storefront-api/internal/logx"
)

type vatChecker interface {
	CheckVAT(ctx context.Context, country, number string) (*vies.Result, error)
}

// Config stores tax computation settings.
type Config struct {
	HomeCountry   string
	HomeRate      float64
	DefaultEURate float64
}

// Line is one tax line rendered at checkout.
type Line struct {
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Rate             float64 `json:"rate"`
	NumberForInvoice string  `json:"numberForInvoice,omitempty"`
}

// Service computes VAT for a destination and taxable base.
type Service struct {
	checker vatChecker
	cfg     Config
	logger  logx.Logger
}

// NewService creates a tax service. checker may be nil, which disables
// reverse-charge validation and always charges the destination rate.
func NewService(checker vatChecker, cfg Config, logger logx.Logger) *Service {
	return &Service{checker: checker, cfg: cfg, logger: logger}
}

// Request is one tax computation extracted from the cart payload.
type Request struct {
	Country   string
	VATNumber string
	Items     []domain.LineItem
	StatedTotal *float64
}

// Taxes returns the tax lines for a cart. Non-EU destinations tax nothing
// (export); EU destinations get their country's standard rate unless a VAT
// number for that country validates, which reverse-charges at 0%.
func (s *Service) Taxes(ctx context.Context, req Request) ([]Line, error) {
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if country == "" {
		return nil, fmt.Errorf("tax: missing destination country")
	}

	base := domain.DeclaredTotal(req.Items, req.StatedTotal)

	if country == s.cfg.HomeCountry {
		return []Line{line(base, s.cfg.HomeRate, "")}, nil
	}
	if !domain.InTradeBloc(country) {
		return []Line{}, nil
	}

	if validated, number := s.reverseCharge(ctx, country, req.VATNumber); validated {
		return []Line{{
			Name:             "VAT (reverse charge)",
			Amount:           0,
			Rate:             0,
			NumberForInvoice: number,
		}}, nil
	}

	return []Line{line(base, StandardRate(country, s.cfg.DefaultEURate), "")}, nil
}

// reverseCharge checks whether a B2B exemption applies. A registry outage
// charges tax rather than granting the exemption.
func (s *Service) reverseCharge(ctx context.Context, country, vatNumber string) (bool, string) {
	number := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(vatNumber), " ", ""))
	if s.checker == nil || len(number) < 3 {
		return false, ""
	}
	if !strings.HasPrefix(number, country) {
		return false, ""
	}

	result, err := s.checker.CheckVAT(ctx, country, number[2:])
	if err != nil {
		s.logger.Warn("vat validation unavailable, charging destination rate",
			logx.String("country", country),
			logx.Err(err),
		)
		return false, ""
	}
	return result.Valid, number
}

func line(base decimal.Decimal, rate float64, number string) Line {
	amount := base.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)).Round(2)
	return Line{
		Name:             fmt.Sprintf("VAT (%s%%)", decimal.NewFromFloat(rate).String()),
		Amount:           amount.InexactFloat64(),
		Rate:             rate,
		NumberForInvoice: number,
	}
}
