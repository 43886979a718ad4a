// Package captcha verifies CAPTCHA tokens against the assessment API.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

// Assessment is the upstream's verdict on one token.
type Assessment struct {
	Success bool
	Score   float64
	Action  string
}

// Client verifies tokens via the siteverify endpoint.
type Client struct {
	httpc    *http.Client
	verifyURL string
	secret   string
	logger   logx.Logger
	requests *prometheus.CounterVec
}

// New creates a captcha client. The counter vector may be nil.
func New(httpc *http.Client, verifyURL, secret string, logger logx.Logger, requests *prometheus.CounterVec) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{httpc: httpc, verifyURL: verifyURL, secret: secret, logger: logger, requests: requests}
}

// Verify posts the token for assessment. remoteIP may be empty.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (*Assessment, error) {
	if c.secret == "" {
		return nil, fmt.Errorf("captcha: %w: secret missing", apperr.ErrNotConfigured)
	}
	if token == "" {
		return nil, fmt.Errorf("captcha: %w: empty token", apperr.ErrInvalid)
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("captcha: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.count("error")
		return nil, fmt.Errorf("captcha: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.count("error")
		return nil, &apperr.UpstreamError{
			Op:     "captcha verify",
			Status: resp.StatusCode,
			Body:   string(body),
			Kind:   apperr.ErrUpstream,
		}
	}
	c.count("ok")

	var payload struct {
		Success bool     `json:"success"`
		Score   float64  `json:"score"`
		Action  string   `json:"action"`
		Errors  []string `json:"error-codes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("captcha: decode response: %w", err)
	}
	if len(payload.Errors) > 0 {
		c.logger.Debug("captcha verify error codes", logx.Any("codes", payload.Errors))
	}

	return &Assessment{Success: payload.Success, Score: payload.Score, Action: payload.Action}, nil
}

func (c *Client) count(outcome string) {
	if c.requests != nil {
		c.requests.WithLabelValues("captcha", outcome).Inc()
	}
}
