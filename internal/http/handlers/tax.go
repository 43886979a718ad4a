package handlers

import (
	"net/http"

	"storefront-api/internal/logx"
	"storefront-api/internal/service/tax"
)

// TaxHandler serves the cart widget's checkout tax endpoint.
type TaxHandler struct {
	uc     taxUsecase
	logger logx.Logger
}

// NewTaxHandler wires a taxUsecase into HTTP handlers.
func NewTaxHandler(logger logx.Logger, uc taxUsecase) *TaxHandler {
	return &TaxHandler{uc: uc, logger: logger}
}

type taxesResponse struct {
	Taxes []tax.Line `json:"taxes"`
}

type taxSoftErrorResponse struct {
	Taxes   []tax.Line `json:"taxes"`
	Error   string     `json:"error"`
	Message string     `json:"message"`
}

// Taxes handles POST /taxes. Like the rates endpoint, failures are
// downgraded to HTTP 200 so the widget can render them.
func (h *TaxHandler) Taxes(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("tax request decode failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, "Invalid request payload")
		return
	}

	lines, err := h.uc.Taxes(r.Context(), tax.Request{
		Country:     req.Content.ShippingAddress.Country,
		VATNumber:   req.Content.VATNumber,
		Items:       req.Content.toItems(),
		StatedTotal: req.Content.Total,
	})
	if err != nil {
		h.logger.Warn("tax computation failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, "Unable to compute taxes")
		return
	}

	if lines == nil {
		lines = []tax.Line{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, taxesResponse{Taxes: lines})
}

func (h *TaxHandler) soft(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(h.logger, w, r, http.StatusOK, taxSoftErrorResponse{
		Taxes:   []tax.Line{},
		Error:   "tax_error",
		Message: msg,
	})
}
