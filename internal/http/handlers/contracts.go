package handlers

import (
	"context"

	"storefront-api/internal/gateway/vies"
	"storefront-api/internal/service/contact"
	"storefront-api/internal/service/shipping"
	"storefront-api/internal/service/tax"
)

type shippingUsecase interface {
	Quote(ctx context.Context, req shipping.Request) (shipping.Result, error)
}

// NewShippingUsecase wires a shipping Service into a shippingUsecase.
func NewShippingUsecase(svc *shipping.Service) shippingUsecase {
	return svc
}

type taxUsecase interface {
	Taxes(ctx context.Context, req tax.Request) ([]tax.Line, error)
}

// NewTaxUsecase wires a tax Service into a taxUsecase.
func NewTaxUsecase(svc *tax.Service) taxUsecase {
	return svc
}

type vatChecker interface {
	CheckVAT(ctx context.Context, country, number string) (*vies.Result, error)
}

// NewVATChecker wires the retrying registry client into a vatChecker.
func NewVATChecker(c *vies.RetryingChecker) vatChecker {
	return c
}

type contactUsecase interface {
	Submit(ctx context.Context, sub contact.Submission) error
}

// NewContactUsecase wires a contact Service into a contactUsecase.
func NewContactUsecase(svc *contact.Service) contactUsecase {
	return svc
}
