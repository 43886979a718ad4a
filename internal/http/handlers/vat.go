package handlers

import (
	"errors"
	"net/http"
	"strings"

	"storefront-api/internal/apperr"
	"storefront-api/internal/logx"
)

// VATHandler serves checkout VAT-number validation against the EU registry.
type VATHandler struct {
	checker vatChecker
	logger  logx.Logger
}

// NewVATHandler wires a vatChecker into HTTP handlers.
func NewVATHandler(logger logx.Logger, checker vatChecker) *VATHandler {
	return &VATHandler{checker: checker, logger: logger}
}

type vatSoftErrorResponse struct {
	Valid   bool   `json:"valid"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Validate handles POST /validate-vat. The submitted number carries the
// country prefix ("ESB12345678"); an invalid number is a valid:false answer,
// not an error. Registry outages come back as a 200 soft-error shape.
func (h *VATHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateVATRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.soft(w, r, "Invalid request payload")
		return
	}

	number := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(req.VATNumber), " ", ""))
	if len(number) < 3 {
		h.soft(w, r, "Invalid VAT number")
		return
	}

	result, err := h.checker.CheckVAT(r.Context(), number[:2], number[2:])
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, validateVATResponse{
			Valid:   result.Valid,
			Name:    result.Name,
			Address: result.Address,
		})
	case errors.Is(err, apperr.ErrInvalid):
		h.soft(w, r, "Invalid VAT number")
	default:
		h.logger.Warn("vat registry lookup failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, "VAT registry unavailable")
	}
}

func (h *VATHandler) soft(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(h.logger, w, r, http.StatusOK, vatSoftErrorResponse{
		Valid:   false,
		Error:   "vat_error",
		Message: msg,
	})
}
