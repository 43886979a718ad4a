package handlers

import (
	"errors"
	"net/http"

	"storefront-api/internal/apperr"
	"storefront-api/internal/domain"
	"storefront-api/internal/logx"
	"storefront-api/internal/service/shipping"
)

const shippingErrorTag = "shipping_error"

// ShippingHandler serves the cart widget's shipping-rate endpoint.
//
// The widget cannot render a transport error, only an empty rate list with a
// message, so every failure past the method check is downgraded to HTTP 200.
type ShippingHandler struct {
	uc     shippingUsecase
	logger logx.Logger
}

// NewShippingHandler wires a shippingUsecase into HTTP handlers.
func NewShippingHandler(logger logx.Logger, uc shippingUsecase) *ShippingHandler {
	return &ShippingHandler{uc: uc, logger: logger}
}

// Rates handles POST /shipping-rates.
func (h *ShippingHandler) Rates(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("shipping handler panic",
				logx.String("req_id", reqID(r)),
				logx.Any("panic", rec),
			)
			h.soft(w, r, "Unexpected error while fetching rates")
		}
	}()

	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("shipping request decode failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, "Invalid request payload")
		return
	}

	result, err := h.uc.Quote(r.Context(), shipping.Request{
		Destination: req.Content.ShippingAddress.toDomain(),
		Items:       req.Content.toItems(),
		StatedTotal: req.Content.Total,
	})
	if err != nil {
		h.logger.Warn("shipping quote failed",
			logx.String("req_id", reqID(r)),
			logx.Err(err),
		)
		h.soft(w, r, softMessage(err))
		return
	}

	writeJSON(h.logger, w, r, http.StatusOK, ratesResponse{
		Rates:   result.Rates,
		Warning: result.Warning,
	})
}

func (h *ShippingHandler) soft(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(h.logger, w, r, http.StatusOK, softErrorResponse{
		Rates:   []domain.CuratedRate{},
		Error:   shippingErrorTag,
		Message: msg,
	})
}

// softMessage maps pipeline errors to the human-readable message the widget
// shows. Upstream status codes and bodies stay in the logs only.
func softMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrNotConfigured):
		return "FedEx not configured"
	case errors.Is(err, apperr.ErrInvalid):
		return "Invalid destination address"
	case errors.Is(err, apperr.ErrAuth):
		return "FedEx authentication failed"
	case errors.Is(err, apperr.ErrNoRates):
		return "FedEx returned no rates"
	case errors.Is(err, apperr.ErrUpstream):
		return "FedEx rate request failed"
	default:
		return "Unexpected error while fetching rates"
	}
}
