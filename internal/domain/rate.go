package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateQuote is a normalized upstream carrier quote.
type RateQuote struct {
	ServiceID   string
	DisplayName string
	Cost        decimal.Decimal
	Currency    string
}

// CuratedRate is a consumer-facing shipping option as rendered by the cart widget.
type CuratedRate struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// SortQuotesByCost orders quotes ascending by cost, stable on equal cost.
func SortQuotesByCost(quotes []RateQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Cost.LessThan(quotes[j].Cost)
	})
}

// SortCuratedByCost orders curated rates ascending by cost.
func SortCuratedByCost(rates []CuratedRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Cost < rates[j].Cost
	})
}
