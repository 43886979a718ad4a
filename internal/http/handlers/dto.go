package handlers

import (
	"bytes"
	"strconv"

	"storefront-api/internal/domain"
)

// looseNumber tolerates the cart widget's sloppy numeric fields: a bare
// number, a numeric string, or anything else (which decodes to zero).
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = looseNumber(v)
	return nil
}

type addressDTO struct {
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Address1   string `json:"address1"`
	State      string `json:"state"`
	Company    string `json:"company"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

func (a addressDTO) toDomain() domain.Address {
	return domain.Address{
		Country:    a.Country,
		PostalCode: a.PostalCode,
		City:       a.City,
		Address1:   a.Address1,
		State:      a.State,
		Company:    a.Company,
		Name:       a.Name,
		Phone:      a.Phone,
	}
}

type lineItemDTO struct {
	Name     string      `json:"name"`
	Price    looseNumber `json:"price"`
	Quantity looseNumber `json:"quantity"`
	Weight   looseNumber `json:"weight"`
}

type cartContentDTO struct {
	ShippingAddress addressDTO    `json:"shippingAddress"`
	Items           []lineItemDTO `json:"items"`
	Total           *float64      `json:"total"`
	VATNumber       string        `json:"vatNumber"`
}

type cartRequest struct {
	Content cartContentDTO `json:"content"`
}

func (c cartContentDTO) toItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, domain.LineItem{
			Name:     it.Name,
			Price:    float64(it.Price),
			Quantity: int(it.Quantity),
			Weight:   float64(it.Weight),
		})
	}
	return items
}

type ratesResponse struct {
	Rates   []domain.CuratedRate `json:"rates"`
	Warning string               `json:"warning,omitempty"`
}

type softErrorResponse struct {
	Rates   []domain.CuratedRate `json:"rates"`
	Error   string               `json:"error"`
	Message string               `json:"message"`
}

type validateVATRequest struct {
	VATNumber string `json:"vatNumber"`
}

type validateVATResponse struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

type statusResponse struct {
	Status string `json:"status"`
}
