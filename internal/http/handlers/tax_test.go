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

	"storefront-api/internal/http/handlers"
	"storefront-api/internal/logx"
	"storefront-api/internal/service/tax"
)

type stubTaxUsecase struct {
	taxesFn func(ctx context.Context, req tax.Request) ([]tax.Line, error)
}

func (s *stubTaxUsecase) Taxes(ctx context.Context, req tax.Request) ([]tax.Line, error) {
	return s.taxesFn(ctx, req)
}

type taxesBody struct {
	Taxes   []tax.Line `json:"taxes"`
	Error   string     `json:"error"`
	Message string     `json:"message"`
}

func postTaxes(t *testing.T, h *handlers.TaxHandler, body string) taxesBody {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/taxes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Taxes(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp taxesBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestTaxHandler_Taxes_OK(t *testing.T) {
	t.Parallel()

	uc := &stubTaxUsecase{
		taxesFn: func(_ context.Context, req tax.Request) ([]tax.Line, error) {
			require.Equal(t, "DE", req.Country)
			require.Equal(t, "DE123456789", req.VATNumber)
			require.Len(t, req.Items, 1)
			return []tax.Line{{Name: "VAT (19%)", Amount: 19, Rate: 19}}, nil
		},
	}
	h := handlers.NewTaxHandler(logx.Nop(), uc)

	body := `{"content":{"shippingAddress":{"country":"DE","postalCode":"10115","city":"Berlin","address1":"Invalidenstr. 1"},"items":[{"name":"FilmRAID-2","price":100}],"vatNumber":"DE123456789"}}`
	resp := postTaxes(t, h, body)

	require.Empty(t, resp.Error)
	require.Len(t, resp.Taxes, 1)
	require.Equal(t, "VAT (19%)", resp.Taxes[0].Name)
}

func TestTaxHandler_Taxes_EmptyListNotNull(t *testing.T) {
	t.Parallel()

	uc := &stubTaxUsecase{
		taxesFn: func(context.Context, tax.Request) ([]tax.Line, error) {
			return nil, nil
		},
	}
	h := handlers.NewTaxHandler(logx.Nop(), uc)

	req := httptest.NewRequest(http.MethodPost, "/taxes", strings.NewReader(`{"content":{"shippingAddress":{"country":"US"},"items":[]}}`))
	rr := httptest.NewRecorder()
	h.Taxes(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"taxes":[]`)
}

func TestTaxHandler_Taxes_FailureStaysSoft(t *testing.T) {
	t.Parallel()

	uc := &stubTaxUsecase{
		taxesFn: func(context.Context, tax.Request) ([]tax.Line, error) {
			return nil, fmt.Errorf("tax: missing destination country")
		},
	}
	h := handlers.NewTaxHandler(logx.Nop(), uc)

	resp := postTaxes(t, h, `{"content":{"items":[]}}`)

	require.Empty(t, resp.Taxes)
	require.Equal(t, "tax_error", resp.Error)
	require.Equal(t, "Unable to compute taxes", resp.Message)
}

func TestTaxHandler_Taxes_BadJSONStaysSoft(t *testing.T) {
	t.Parallel()

	uc := &stubTaxUsecase{
		taxesFn: func(context.Context, tax.Request) ([]tax.Line, error) {
			require.FailNow(t, "usecase must not run on undecodable payload")
			return nil, nil
		},
	}
	h := handlers.NewTaxHandler(logx.Nop(), uc)

	resp := postTaxes(t, h, `not json`)

	require.Equal(t, "tax_error", resp.Error)
	require.Equal(t, "Invalid request payload", resp.Message)
}
