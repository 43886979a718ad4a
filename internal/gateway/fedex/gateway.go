// Package fedex talks to the FedEx OAuth and rate-quote APIs and normalizes
// the carrier's response shapes into domain rate quotes.
package fedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"storefront-api/internal/apperr"
	"storefront-api/internal/domain"
	"storefront-api/internal/logx"
)

// Config stores carrier credentials, endpoints and the fixed shipment origin.
type Config struct {
	BaseURL              string
	ClientID             string
	ClientSecret         string
	AccountNumber        string
	PickupType           string
	Currency             string
	CountryOfManufacture string
	Shipper              Shipper
}

// Shipper is the fixed shipment origin attached to every rate request.
type Shipper struct {
	Name       string
	Company    string
	Phone      string
	Street     string
	City       string
	PostalCode string
	State      string
	Country    string
}

// Shipment is everything the carrier needs to price a cart.
type Shipment struct {
	Destination   domain.Address
	Packages      []domain.PackageSpec
	DeclaredTotal decimal.Decimal
	International bool
}

// Gateway is a rate-quote gateway backed by the FedEx HTTP APIs.
type Gateway struct {
	httpc    *http.Client
	cfg      Config
	logger   logx.Logger
	requests *prometheus.CounterVec
}

// New creates a FedEx gateway. The counter vector may be nil.
func New(httpc *http.Client, cfg Config, logger logx.Logger, requests *prometheus.CounterVec) *Gateway {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Gateway{httpc: httpc, cfg: cfg, logger: logger, requests: requests}
}

// Quote obtains a bearer token, posts the rate request and returns normalized
// quotes sorted ascending by cost. The token is fetched fresh per call and
// never cached; the rate fetch is attempted exactly once.
func (g *Gateway) Quote(ctx context.Context, sh Shipment) ([]domain.RateQuote, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("fedex gateway: %w", err)
	}

	payload := buildRateRequest(g.cfg, sh)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fedex gateway: marshal rate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/rate/v1/rates/quotes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fedex gateway: build rate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpc.Do(req)
	if err != nil {
		g.count("error")
		return nil, fmt.Errorf("fedex gateway: rate fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.count("error")
		return nil, fmt.Errorf("fedex gateway: read rate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.count("error")
		return nil, &apperr.UpstreamError{
			Op:     "fedex rates",
			Status: resp.StatusCode,
			Body:   string(respBody),
			Kind:   apperr.ErrUpstream,
		}
	}
	g.count("ok")

	quotes, err := normalizeRates(respBody)
	if err != nil {
		return nil, fmt.Errorf("fedex gateway: %w", err)
	}
	for i := range quotes {
		if quotes[i].Currency == "" {
			quotes[i].Currency = g.cfg.Currency
		}
	}

	g.logger.Debug("fedex rates fetched",
		logx.Int("quotes", len(quotes)),
		logx.Bool("international", sh.International),
	)
	return quotes, nil
}

func (g *Gateway) count(outcome string) {
	if g.requests != nil {
		g.requests.WithLabelValues("fedex", outcome).Inc()
	}
}
