// Package vies looks VAT numbers up in the EU VAT registry (VIES).
package vies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

// Result is the registry's answer for one VAT number.
type Result struct {
	Valid   bool
	Name    string
	Address string
}

// Client is a VAT-registry lookup client speaking the checkVat SOAP service.
type Client struct {
	httpc    *http.Client
	url      string
	logger   logx.Logger
	requests *prometheus.CounterVec
}

// New creates a VIES client. The counter vector may be nil.
func New(httpc *http.Client, url string, logger logx.Logger, requests *prometheus.CounterVec) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{httpc: httpc, url: url, logger: logger, requests: requests}
}

const envelope = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types"><soapenv:Header/><soapenv:Body><urn:checkVat><urn:countryCode>%s</urn:countryCode><urn:vatNumber>%s</urn:vatNumber></urn:checkVat></soapenv:Body></soapenv:Envelope>`

// The reply is a fixed envelope; three anchored regexes cover everything we
// read from it. Namespace prefixes vary across deployments.
var (
	reInput   = regexp.MustCompile(`^[A-Z0-9+*.]{1,20}$`)
	reValid   = regexp.MustCompile(`<(?:\w+:)?valid>\s*(true|false)\s*</(?:\w+:)?valid>`)
	reName    = regexp.MustCompile(`<(?:\w+:)?name>\s*([^<]*?)\s*</(?:\w+:)?name>`)
	reAddress = regexp.MustCompile(`(?s)<(?:\w+:)?address>\s*(.*?)\s*</(?:\w+:)?address>`)
)

// CheckVAT queries the registry for a country code plus bare VAT number.
func (c *Client) CheckVAT(ctx context.Context, country, number string) (*Result, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	number = strings.ToUpper(strings.TrimSpace(number))
	if len(country) != 2 || !reInput.MatchString(country) || !reInput.MatchString(number) {
		return nil, fmt.Errorf("vies: %w: malformed vat number", apperr.ErrInvalid)
	}

	payload := fmt.Sprintf(envelope, country, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("vies: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("vies: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("vies: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.count("error")
		return nil, &apperr.UpstreamError{
			Op:     "vies checkVat",
			Status: resp.StatusCode,
			Body:   string(body),
			Kind:   apperr.ErrUpstream,
		}
	}
	c.count("ok")

	m := reValid.FindSubmatch(body)
	if m == nil {
		return nil, &apperr.UpstreamError{
			Op:     "vies checkVat",
			Status: resp.StatusCode,
			Body:   string(body),
			Kind:   apperr.ErrUpstream,
		}
	}

	result := &Result{Valid: string(m[1]) == "true"}
	if nm := reName.FindSubmatch(body); nm != nil {
		result.Name = string(nm[1])
	}
	if am := reAddress.FindSubmatch(body); am != nil {
		result.Address = string(am[1])
	}

	c.logger.Debug("vies lookup done",
		logx.String("country", country),
		logx.Bool("valid", result.Valid),
	)
	return result, nil
}

func (c *Client) count(outcome string) {
	if c.requests != nil {
		c.requests.WithLabelValues("vies", outcome).Inc()
	}
}
