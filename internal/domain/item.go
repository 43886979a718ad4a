package domain

import "github.com/shopspring/decimal"

// LineItem is a single cart line as sent by the cart widget.
// Quantity 0 means "not provided" and is treated as 1.
type LineItem struct {
	Name     string
	Price    float64
	Quantity int
	Weight   float64
}

// DeclaredTotal returns the cart's declared value: the stated total when the
// payload carries one, otherwise the sum of price x quantity over the items.
func DeclaredTotal(items []LineItem, stated *float64) decimal.Decimal {
	if stated != nil {
		return decimal.NewFromFloat(*stated)
	}
	total := decimal.Zero
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := decimal.NewFromFloat(it.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
