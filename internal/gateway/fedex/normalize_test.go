package fedex

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRates_CurrentShape(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"output": {
			"rateReplyDetails": [
				{
					"serviceType": "FEDEX_PRIORITY_EXPRESS",
					"serviceName": "FedEx Priority Express",
					"ratedShipmentDetails": [
						{"totalNetCharge": 70.0, "currency": "EUR"}
					]
				},
				{
					"serviceType": "FEDEX_PRIORITY",
					"serviceName": "FedEx Priority",
					"ratedShipmentDetails": [
						{"totalNetCharge": 40.0}
					]
				}
			]
		}
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	// sorted ascending by cost
	require.Equal(t, "FEDEX_PRIORITY", quotes[0].ServiceID)
	require.True(t, quotes[0].Cost.Equal(decimal.NewFromInt(40)))
	require.Equal(t, "FEDEX_PRIORITY_EXPRESS", quotes[1].ServiceID)
	require.True(t, quotes[1].Cost.Equal(decimal.NewFromInt(70)))
}

func TestNormalizeRates_LegacyFieldNames(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"rateDetails": [
			{
				"serviceId": "INTERNATIONAL_ECONOMY",
				"serviceDescription": "FedEx International Economy",
				"ratedShipments": [
					{"netCharge": {"amount": 120.5, "currency": "EUR"}}
				]
			}
		]
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "INTERNATIONAL_ECONOMY", quotes[0].ServiceID)
	require.Equal(t, "FedEx International Economy", quotes[0].DisplayName)
	require.True(t, quotes[0].Cost.Equal(decimal.NewFromFloat(120.5)))
	require.Equal(t, "EUR", quotes[0].Currency)
}

func TestNormalizeRates_ChargePriorityOrder(t *testing.T) {
	t.Parallel()

	// totalNetCharge must win over the later fields even when both exist.
	body := []byte(`{
		"rateReplyDetails": [
			{
				"serviceType": "FEDEX_PRIORITY",
				"ratedShipmentDetails": [
					{
						"totalBaseCharge": 99.0,
						"totalNetCharge": 40.0,
						"totalNetFedExCharge": 45.0
					}
				]
			}
		]
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.True(t, quotes[0].Cost.Equal(decimal.NewFromInt(40)), "got %s", quotes[0].Cost)
}

func TestNormalizeRates_ObjectDescriptionAndFallbackName(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"rateReplyDetails": [
			{
				"serviceType": "FEDEX_GROUND",
				"serviceDescription": {"description": "FedEx Ground"},
				"ratedShipmentDetails": [{"totalNetCharge": 10}]
			},
			{
				"serviceType": "FEDEX_FIRST",
				"ratedShipmentDetails": [{"totalNetCharge": 20}]
			}
		]
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, "FedEx Ground", quotes[0].DisplayName)
	require.Equal(t, "FEDEX_FIRST", quotes[1].DisplayName)
}

func TestNormalizeRates_DropsEntriesWithoutCharge(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"rateReplyDetails": [
			{"serviceType": "NO_CHARGE", "ratedShipmentDetails": [{"transitTime": "TWO_DAYS"}]},
			{"serviceType": "FEDEX_PRIORITY", "ratedShipmentDetails": [{"totalNetCharge": 40}]},
			{"ratedShipmentDetails": [{"totalNetCharge": 5}]}
		]
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "FEDEX_PRIORITY", quotes[0].ServiceID)
}

func TestNormalizeRates_EntryLevelCharge(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"rateReplyDetails": [
			{"serviceType": "FEDEX_PRIORITY", "totalNetCharge": 33.3}
		]
	}`)

	quotes, err := normalizeRates(body)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.True(t, quotes[0].Cost.Equal(decimal.NewFromFloat(33.3)))
}

func TestNormalizeRates_Deterministic(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"rateReplyDetails": [
			{"serviceType": "B", "ratedShipmentDetails": [{"totalNetCharge": 50}]},
			{"serviceType": "A", "ratedShipmentDetails": [{"totalNetCharge": 50}]},
			{"serviceType": "C", "ratedShipmentDetails": [{"totalNetCharge": 10}]}
		]
	}`)

	first, err := normalizeRates(body)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := normalizeRates(body)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Equal(t, "C", first[0].ServiceID)
	require.Equal(t, "B", first[1].ServiceID) // stable sort keeps input order on ties
}

func TestNormalizeRates_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := normalizeRates([]byte("not json"))
	require.Error(t, err)
}

func TestNormalizeRates_EmptyReply(t *testing.T) {
	t.Parallel()

	quotes, err := normalizeRates([]byte(`{"output": {}}`))
	require.NoError(t, err)
	require.Empty(t, quotes)
}
