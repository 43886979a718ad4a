package fedex

import "storefront-api/internal/domain"

// Defaults substituted when the cart widget omits recipient contact fields.
const (
	defaultRecipientName    = "Customer"
	defaultRecipientCompany = "Private"
	defaultRecipientPhone   = "000000000"
)

// Generic commodity attached to international shipments. FilmRAID units
// clear customs as disk storage hardware.
const (
	commodityDescription = "Disk storage array"
	harmonizedCode       = "847170"
)

type rateRequest struct {
	AccountNumber     accountNumber     `json:"accountNumber"`
	RequestedShipment requestedShipment `json:"requestedShipment"`
}

type accountNumber struct {
	Value string `json:"value"`
}

type requestedShipment struct {
	Shipper                   party             `json:"shipper"`
	Recipient                 party             `json:"recipient"`
	PreferredCurrency         string            `json:"preferredCurrency"`
	PickupType                string            `json:"pickupType"`
	RateRequestType           []string          `json:"rateRequestType"`
	ShippingChargesPayment    payment           `json:"shippingChargesPayment"`
	CustomsClearanceDetail    *customsDetail    `json:"customsClearanceDetail,omitempty"`
	TotalDeclaredValue        *money            `json:"totalDeclaredValue,omitempty"`
	RequestedPackageLineItems []packageLineItem `json:"requestedPackageLineItems"`
}

type party struct {
	Contact contact      `json:"contact"`
	Address partyAddress `json:"address"`
}

type contact struct {
	PersonName  string `json:"personName"`
	CompanyName string `json:"companyName,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
}

type partyAddress struct {
	StreetLines         []string `json:"streetLines"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode,omitempty"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
	Residential         bool     `json:"residential"`
}

type payment struct {
	PaymentType string `json:"paymentType"`
	Payor       payor  `json:"payor"`
}

type payor struct {
	ResponsibleParty responsibleParty `json:"responsibleParty"`
}

type responsibleParty struct {
	AccountNumber accountNumber `json:"accountNumber"`
}

type customsDetail struct {
	DutiesPayment     payment           `json:"dutiesPayment"`
	CommercialInvoice commercialInvoice `json:"commercialInvoice"`
	Commodities       []commodity       `json:"commodities"`
}

type commercialInvoice struct {
	TermsOfSale string `json:"termsOfSale"`
}

type commodity struct {
	Description          string `json:"description"`
	HarmonizedCode       string `json:"harmonizedCode"`
	CountryOfManufacture string `json:"countryOfManufacture"`
	Quantity             int    `json:"quantity"`
	QuantityUnits        string `json:"quantityUnits"`
	Weight               weight `json:"weight"`
	UnitPrice            money  `json:"unitPrice"`
	CustomsValue         money  `json:"customsValue"`
}

type weight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type money struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type packageLineItem struct {
	Weight     weight     `json:"weight"`
	Dimensions dimensions `json:"dimensions"`
}

type dimensions struct {
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Units  string `json:"units"`
}

// buildRateRequest assembles the carrier payload for one shipment. An explicit
// serviceType restriction and the SIGNATURE_OPTION special service are
// deliberately not sent: the account does not allow them.
func buildRateRequest(cfg Config, sh Shipment) rateRequest {
	shipment := requestedShipment{
		Shipper: party{
			Contact: contact{
				PersonName:  cfg.Shipper.Name,
				CompanyName: cfg.Shipper.Company,
				PhoneNumber: cfg.Shipper.Phone,
			},
			Address: partyAddress{
				StreetLines: []string{cfg.Shipper.Street},
				City:        cfg.Shipper.City,
				PostalCode:  cfg.Shipper.PostalCode,
				CountryCode: cfg.Shipper.Country,
			},
		},
		Recipient:         buildRecipient(sh.Destination),
		PreferredCurrency: cfg.Currency,
		PickupType:        cfg.PickupType,
		RateRequestType:   []string{"ACCOUNT", "LIST"},
		ShippingChargesPayment: payment{
			PaymentType: "SENDER",
			Payor:       payor{ResponsibleParty: responsibleParty{AccountNumber: accountNumber{Value: cfg.AccountNumber}}},
		},
		RequestedPackageLineItems: buildPackageLineItems(sh.Packages),
	}

	declared, _ := sh.DeclaredTotal.Float64()
	if declared > 0 {
		shipment.TotalDeclaredValue = &money{Currency: cfg.Currency, Amount: declared}
	}

	if sh.International {
		shipment.CustomsClearanceDetail = buildCustoms(cfg, sh, declared)
	}

	return rateRequest{
		AccountNumber:     accountNumber{Value: cfg.AccountNumber},
		RequestedShipment: shipment,
	}
}

func buildRecipient(dst domain.Address) party {
	c := contact{
		PersonName:  dst.Name,
		CompanyName: dst.Company,
		PhoneNumber: dst.Phone,
	}
	if c.PersonName == "" {
		c.PersonName = defaultRecipientName
	}
	if c.CompanyName == "" {
		c.CompanyName = defaultRecipientCompany
	}
	if c.PhoneNumber == "" {
		c.PhoneNumber = defaultRecipientPhone
	}
	return party{
		Contact: c,
		Address: partyAddress{
			StreetLines:         []string{dst.Address1},
			City:                dst.City,
			StateOrProvinceCode: dst.State,
			PostalCode:          dst.PostalCode,
			CountryCode:         dst.Country,
			Residential:         true,
		},
	}
}

func buildPackageLineItems(packages []domain.PackageSpec) []packageLineItem {
	items := make([]packageLineItem, 0, len(packages))
	for _, p := range packages {
		items = append(items, packageLineItem{
			Weight: weight{Units: "KG", Value: p.WeightKg},
			Dimensions: dimensions{
				Length: p.LengthCm,
				Width:  p.WidthCm,
				Height: p.HeightCm,
				Units:  "CM",
			},
		})
	}
	return items
}

// buildCustoms attaches the duties-paid-by-sender clearance block with a
// single generic commodity line. Weight and customs value floor at 1: the
// upstream rejects zero values.
func buildCustoms(cfg Config, sh Shipment, declared float64) *customsDetail {
	totalWeight := domain.TotalWeightKg(sh.Packages)
	if totalWeight <= 0 {
		totalWeight = 1
	}
	if declared <= 0 {
		declared = 1
	}
	value := money{Currency: cfg.Currency, Amount: declared}
	return &customsDetail{
		DutiesPayment: payment{
			PaymentType: "SENDER",
			Payor:       payor{ResponsibleParty: responsibleParty{AccountNumber: accountNumber{Value: cfg.AccountNumber}}},
		},
		CommercialInvoice: commercialInvoice{TermsOfSale: "DDP"},
		Commodities: []commodity{{
			Description:          commodityDescription,
			HarmonizedCode:       harmonizedCode,
			CountryOfManufacture: cfg.CountryOfManufacture,
			Quantity:             1,
			QuantityUnits:        "PCS",
			Weight:               weight{Units: "KG", Value: totalWeight},
			UnitPrice:            value,
			CustomsValue:         value,
		}},
	}
}
