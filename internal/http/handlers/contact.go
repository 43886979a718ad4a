package handlers

import (
	"errors"
	"net"
	"net/http"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
	"storefront-api/internal/service/contact"
)

// ContactHandler serves the storefront contact form.
type ContactHandler struct {
	uc     contactUsecase
	logger logx.Logger
}

// NewContactHandler wires a contactUsecase into HTTP handlers.
func NewContactHandler(logger logx.Logger, uc contactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc, logger: logger}
}

type contactSoftErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.soft(w, r, "Invalid request payload")
		return
	}

	err := h.uc.Submit(r.Context(), contact.Submission{
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     clientIP(r),
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		h.soft(w, r, "Submission rejected")
	case errors.Is(err, apperr.ErrNotConfigured):
		h.logger.Warn("contact form not configured", logx.String("req_id", reqID(r)))
		h.soft(w, r, "Contact form not configured")
	default:
		h.logger.Warn("contact relay failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, "Unable to send message")
	}
}

func (h *ContactHandler) soft(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(h.logger, w, r, http.StatusOK, contactSoftErrorResponse{
		Status:  "error",
		Error:   "contact_error",
		Message: msg,
	})
}

// clientIP is what the captcha assessment receives as the visitor address.
// The RealIP middleware has already folded proxy headers into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
