package fedex

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/domain"
)

func testConfig() Config {
	return Config{
		BaseURL:              "https://example.test",
		ClientID:             "id",
		ClientSecret:         "secret",
		AccountNumber:        "123456789",
		PickupType:           "DROPOFF_AT_FEDEX_LOCATION",
		Currency:             "EUR",
		CountryOfManufacture: "ES",
		Shipper: Shipper{
			Name:       "Shipping Department",
			Company:    "FilmRAID Store",
			Phone:      "+34930000000",
			Street:     "Carrer de la Llacuna 22",
			City:       "Barcelona",
			PostalCode: "08005",
			Country:    "ES",
		},
	}
}

func testShipment(international bool) Shipment {
	return Shipment{
		Destination: domain.Address{
			Country:    "US",
			PostalCode: "10001",
			City:       "New York",
			Address1:   "350 5th Ave",
		},
		Packages:      []domain.PackageSpec{{WeightKg: 7.5, LengthCm: 45, WidthCm: 35, HeightCm: 20}},
		DeclaredTotal: decimal.NewFromInt(500),
		International: international,
	}
}

func TestBuildRateRequest_CustomsOnlyWhenInternational(t *testing.T) {
	t.Parallel()

	domestic := buildRateRequest(testConfig(), testShipment(false))
	require.Nil(t, domestic.RequestedShipment.CustomsClearanceDetail)

	international := buildRateRequest(testConfig(), testShipment(true))
	customs := international.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, customs)
	require.Equal(t, "SENDER", customs.DutiesPayment.PaymentType)
	require.Equal(t, "DDP", customs.CommercialInvoice.TermsOfSale)
	require.Len(t, customs.Commodities, 1)
	require.Equal(t, harmonizedCode, customs.Commodities[0].HarmonizedCode)
	require.Equal(t, "ES", customs.Commodities[0].CountryOfManufacture)
	require.Equal(t, 7.5, customs.Commodities[0].Weight.Value)
	require.Equal(t, 500.0, customs.Commodities[0].CustomsValue.Amount)
}

func TestBuildCustoms_FloorsZeroWeightAndValue(t *testing.T) {
	t.Parallel()

	sh := testShipment(true)
	sh.Packages = nil
	sh.DeclaredTotal = decimal.Zero

	req := buildRateRequest(testConfig(), sh)
	customs := req.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, customs)
	require.Equal(t, 1.0, customs.Commodities[0].Weight.Value)
	require.Equal(t, 1.0, customs.Commodities[0].CustomsValue.Amount)
}

func TestBuildRateRequest_RecipientDefaultsAndResidential(t *testing.T) {
	t.Parallel()

	req := buildRateRequest(testConfig(), testShipment(false))
	recipient := req.RequestedShipment.Recipient

	require.Equal(t, defaultRecipientName, recipient.Contact.PersonName)
	require.Equal(t, defaultRecipientCompany, recipient.Contact.CompanyName)
	require.Equal(t, defaultRecipientPhone, recipient.Contact.PhoneNumber)
	require.True(t, recipient.Address.Residential)
	require.Equal(t, "US", recipient.Address.CountryCode)
}

func TestBuildRateRequest_SenderPaysWithAccountNumber(t *testing.T) {
	t.Parallel()

	req := buildRateRequest(testConfig(), testShipment(false))

	require.Equal(t, "123456789", req.AccountNumber.Value)
	payment := req.RequestedShipment.ShippingChargesPayment
	require.Equal(t, "SENDER", payment.PaymentType)
	require.Equal(t, "123456789", payment.Payor.ResponsibleParty.AccountNumber.Value)
}

func TestBuildRateRequest_PackagesAndDeclaredValue(t *testing.T) {
	t.Parallel()

	sh := testShipment(false)
	sh.Packages = []domain.PackageSpec{
		{WeightKg: 9, LengthCm: 50, WidthCm: 40, HeightCm: 25},
		{WeightKg: 9, LengthCm: 50, WidthCm: 40, HeightCm: 25},
	}

	req := buildRateRequest(testConfig(), sh)
	items := req.RequestedShipment.RequestedPackageLineItems
	require.Len(t, items, 2)
	require.Equal(t, "KG", items[0].Weight.Units)
	require.Equal(t, "CM", items[0].Dimensions.Units)
	require.Equal(t, 50, items[0].Dimensions.Length)

	require.NotNil(t, req.RequestedShipment.TotalDeclaredValue)
	require.Equal(t, 500.0, req.RequestedShipment.TotalDeclaredValue.Amount)
}
