// Package mail relays transactional email through the email-delivery API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

// Message is one transactional email to relay.
type Message struct {
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	ReplyTo   string
	Subject   string
	TextBody  string
}

// Client posts messages to the delivery API with basic-auth key/secret.
type Client struct {
	httpc    *http.Client
	baseURL  string
	key      string
	secret   string
	logger   logx.Logger
	requests *prometheus.CounterVec
}

// New creates a mail client. The counter vector may be nil.
func New(httpc *http.Client, baseURL, key, secret string, logger logx.Logger, requests *prometheus.CounterVec) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{httpc: httpc, baseURL: baseURL, key: key, secret: secret, logger: logger, requests: requests}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type sendMessage struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	ReplyTo  *address  `json:"ReplyTo,omitempty"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
}

type sendRequest struct {
	Messages []sendMessage `json:"Messages"`
}

// Send relays one message. Delivery is fire-and-forget: the API's accepted
// response is the only confirmation.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.key == "" || c.secret == "" {
		return fmt.Errorf("mail: %w: api key missing", apperr.ErrNotConfigured)
	}

	payload := sendRequest{Messages: []sendMessage{{
		From:     address{Email: msg.FromEmail, Name: msg.FromName},
		To:       []address{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:  msg.Subject,
		TextPart: msg.TextBody,
	}}}
	if msg.ReplyTo != "" {
		payload.Messages[0].ReplyTo = &address{Email: msg.ReplyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mail: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.key, c.secret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.count("error")
		return fmt.Errorf("mail: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.count("error")
		return fmt.Errorf("mail: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.count("error")
		return &apperr.UpstreamError{
			Op:     "mail send",
			Status: resp.StatusCode,
			Body:   string(respBody),
			Kind:   apperr.ErrUpstream,
		}
	}
	c.count("ok")

	c.logger.Info("mail relayed",
		logx.String("to", msg.ToEmail),
		logx.String("subject", msg.Subject),
	)
	return nil
}

func (c *Client) count(outcome string) {
	if c.requests != nil {
		c.requests.WithLabelValues("mail", outcome).Inc()
	}
}
