package fedex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

// authStrategy is one way of presenting the client-credentials grant to the
// identity endpoint. Strategies are tried in order; the first one that yields
// a token wins.
type authStrategy struct {
	name  string
	apply func(req *http.Request, form url.Values, cfg Config)
}

var authStrategies = []authStrategy{
	{
		name: "body-secret",
		apply: func(_ *http.Request, form url.Values, cfg Config) {
			form.Set("client_id", cfg.ClientID)
			form.Set("client_secret", cfg.ClientSecret)
		},
	},
	{
		name: "basic-auth",
		apply: func(req *http.Request, _ url.Values, cfg Config) {
			req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)
		},
	},
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// fetchToken runs the strategy chain against the identity endpoint. The
// returned error carries the last upstream status and body for operator logs.
func (g *Gateway) fetchToken(ctx context.Context) (string, error) {
	var lastErr error
	for _, strategy := range authStrategies {
		token, err := g.tryAuth(ctx, strategy)
		if err == nil {
			return token, nil
		}
		lastErr = err
		g.logger.Warn("fedex token attempt failed",
			logx.String("strategy", strategy.name),
			logx.Err(err),
		)
	}
	return "", lastErr
}

func (g *Gateway) tryAuth(ctx context.Context, strategy authStrategy) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/oauth/token", nil)
	if err != nil {
		return "", err
	}
	strategy.apply(req, form, g.cfg)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpc.Do(req)
	if err != nil {
		g.count("error")
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.count("error")
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.count("error")
		return "", &apperr.UpstreamError{
			Op:     "fedex token (" + strategy.name + ")",
			Status: resp.StatusCode,
			Body:   string(body),
			Kind:   apperr.ErrAuth,
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		g.count("error")
		return "", &apperr.UpstreamError{
			Op:     "fedex token (" + strategy.name + ")",
			Status: resp.StatusCode,
			Body:   string(body),
			Kind:   apperr.ErrAuth,
		}
	}
	g.count("ok")
	return tr.AccessToken, nil
}
