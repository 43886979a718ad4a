package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront-api/internal/apperr"
	"storefront-api/internal/http/handlers"
	"storefront-api/internal/logx"
	"storefront-api/internal/service/contact"
)

type stubContactUsecase struct {
	submitFn func(ctx context.Context, sub contact.Submission) error
}

func (s *stubContactUsecase) Submit(ctx context.Context, sub contact.Submission) error {
	return s.submitFn(ctx, sub)
}

type contactBody struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func postContact(t *testing.T, h *handlers.ContactHandler, body string) contactBody {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:51234"
	rr := httptest.NewRecorder()
	h.Submit(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp contactBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestContactHandler_Submit_OK(t *testing.T) {
	t.Parallel()

	uc := &stubContactUsecase{
		submitFn: func(_ context.Context, sub contact.Submission) error {
			require.Equal(t, "Jordan", sub.Name)
			require.Equal(t, "jordan@example.com", sub.Email)
			require.Equal(t, "tok", sub.CaptchaToken)
			require.Equal(t, "203.0.113.9", sub.RemoteIP)
			return nil
		},
	}
	h := handlers.NewContactHandler(logx.Nop(), uc)

	resp := postContact(t, h, `{"name":"Jordan","email":"jordan@example.com","message":"hi","captchaToken":"tok"}`)

	require.Equal(t, "ok", resp.Status)
	require.Empty(t, resp.Error)
}

func TestContactHandler_Submit_RejectedStaysSoft(t *testing.T) {
	t.Parallel()

	uc := &stubContactUsecase{
		submitFn: func(context.Context, contact.Submission) error {
			return fmt.Errorf("contact: captcha rejected: %w", apperr.ErrInvalid)
		},
	}
	h := handlers.NewContactHandler(logx.Nop(), uc)

	resp := postContact(t, h, `{"name":"x","email":"x@example.com","message":"hi","captchaToken":"bad"}`)

	require.Equal(t, "error", resp.Status)
	require.Equal(t, "contact_error", resp.Error)
	require.Equal(t, "Submission rejected", resp.Message)
}

func TestContactHandler_Submit_RelayFailureStaysSoft(t *testing.T) {
	t.Parallel()

	uc := &stubContactUsecase{
		submitFn: func(context.Context, contact.Submission) error {
			return &apperr.UpstreamError{Op: "mail send", Status: 500, Kind: apperr.ErrUpstream}
		},
	}
	h := handlers.NewContactHandler(logx.Nop(), uc)

	resp := postContact(t, h, `{"name":"x","email":"x@example.com","message":"hi","captchaToken":"tok"}`)

	require.Equal(t, "contact_error", resp.Error)
	require.Equal(t, "Unable to send message", resp.Message)
}

func TestContactHandler_Submit_NotConfiguredStaysSoft(t *testing.T) {
	t.Parallel()

	uc := &stubContactUsecase{
		submitFn: func(context.Context, contact.Submission) error {
			return fmt.Errorf("captcha: %w", apperr.ErrNotConfigured)
		},
	}
	h := handlers.NewContactHandler(logx.Nop(), uc)

	resp := postContact(t, h, `{"name":"x","email":"x@example.com","message":"hi","captchaToken":"tok"}`)

	require.Equal(t, "Contact form not configured", resp.Message)
}
