package fedex

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-api/internal/domain"
)

// The upstream response shape varies by API version. Each concept is looked
// up under an ordered list of candidate field names; the first hit wins.
var (
	detailListFields  = []string{"rateReplyDetails", "rateDetails"}
	ratedDetailFields = []string{"ratedShipmentDetails", "ratedShipments"}
	serviceIDFields   = []string{"serviceType", "serviceId"}
	chargeFields      = []string{"totalNetCharge", "totalNetFedExCharge", "totalBaseCharge", "netCharge"}
)

// normalizeRates flattens the carrier response into quotes sorted ascending
// by cost. Entries without an extractable charge are dropped.
func normalizeRates(body []byte) ([]domain.RateQuote, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}

	// Newer API versions wrap the reply in an "output" object.
	if raw, ok := root["output"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err == nil {
			root = inner
		}
	}

	entries := findDetailList(root)
	quotes := make([]domain.RateQuote, 0, len(entries))
	for _, raw := range entries {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		quote, ok := normalizeEntry(entry)
		if !ok {
			continue
		}
		quotes = append(quotes, quote)
	}

	domain.SortQuotesByCost(quotes)
	return quotes, nil
}

func findDetailList(root map[string]json.RawMessage) []json.RawMessage {
	for _, field := range detailListFields {
		raw, ok := root[field]
		if !ok {
			continue
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries
		}
	}
	return nil
}

func normalizeEntry(entry map[string]json.RawMessage) (domain.RateQuote, bool) {
	serviceID := firstString(entry, serviceIDFields)
	if serviceID == "" {
		return domain.RateQuote{}, false
	}

	amount, currency, ok := findCharge(entry)
	if !ok {
		return domain.RateQuote{}, false
	}

	name := serviceDisplayName(entry)
	if name == "" {
		name = serviceID
	}

	return domain.RateQuote{
		ServiceID:   serviceID,
		DisplayName: name,
		Cost:        amount,
		Currency:    currency,
	}, true
}

// findCharge searches the nested rated-detail structures, then the entry
// itself, applying the charge-field priority order at each level.
func findCharge(entry map[string]json.RawMessage) (decimal.Decimal, string, bool) {
	for _, field := range ratedDetailFields {
		raw, ok := entry[field]
		if !ok {
			continue
		}
		var details []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &details); err != nil {
			continue
		}
		for _, detail := range details {
			if amount, currency, ok := chargeFrom(detail); ok {
				return amount, currency, true
			}
		}
	}
	return chargeFrom(entry)
}

func chargeFrom(m map[string]json.RawMessage) (decimal.Decimal, string, bool) {
	for _, field := range chargeFields {
		raw, ok := m[field]
		if !ok {
			continue
		}
		if amount, currency, ok := decodeCharge(raw); ok {
			return amount, currency, true
		}
	}
	return decimal.Decimal{}, "", false
}

// decodeCharge accepts a bare number or an {amount, currency} object.
func decodeCharge(raw json.RawMessage) (decimal.Decimal, string, bool) {
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if amount, err := decimal.NewFromString(number.String()); err == nil {
			return amount, "", true
		}
	}

	var obj struct {
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Amount != "" {
		if amount, err := decimal.NewFromString(obj.Amount.String()); err == nil {
			return amount, obj.Currency, true
		}
	}
	return decimal.Decimal{}, "", false
}

func serviceDisplayName(entry map[string]json.RawMessage) string {
	if name := firstString(entry, []string{"serviceName"}); name != "" {
		return name
	}
	// serviceDescription is a string in legacy replies, an object now.
	raw, ok := entry["serviceDescription"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Description
	}
	return ""
}

func firstString(m map[string]json.RawMessage, fields []string) string {
	for _, field := range fields {
		raw, ok := m[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
