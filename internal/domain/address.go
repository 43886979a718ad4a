package domain

import (
	"strings"

	"storefront-api/internal/apperr"
)

// Address is a shipment destination or origin as sent by the cart widget.
type Address struct {
	Country    string
	PostalCode string
	City       string
	Address1   string
	State      string
	Company    string
	Name       string
	Phone      string
}

// Normalize trims fields and upper-cases the country code.
func (a Address) Normalize() Address {
	a.Country = strings.ToUpper(strings.TrimSpace(a.Country))
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.City = strings.TrimSpace(a.City)
	a.Address1 = strings.TrimSpace(a.Address1)
	return a
}

// Validate checks that the fields required for a rate quote are present.
func (a Address) Validate() error {
	if a.Country == "" || a.PostalCode == "" || a.City == "" || a.Address1 == "" {
		return apperr.ErrInvalid
	}
	return nil
}
