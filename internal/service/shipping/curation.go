package shipping

import "storefront-api/internal/domain"

// Curated service ids carry the carrier prefix so the cart widget can tell
// carriers apart; the upstream serviceType follows the prefix.
const idPrefix = "FEDEX_"

// Allow-lists of upstream service types with customer-facing labels, one per
// curation branch. Anything outside the branch's list is filtered out.
var domesticLabels = map[string]string{
	"FEDEX_PRIORITY":         "Standard (24–48h)",
	"FEDEX_PRIORITY_EXPRESS": "Express (before 10/12h)",
}

var internationalLabels = map[string]string{
	"FEDEX_INTERNATIONAL_PRIORITY": "Express (1–3 days)",
	"FEDEX_INTERNATIONAL_ECONOMY":  "Standard (3–7 days)",
	// API versions before the FEDEX_ service-type prefix
	"INTERNATIONAL_PRIORITY": "Express (1–3 days)",
	"INTERNATIONAL_ECONOMY":  "Standard (3–7 days)",
}

// curate filters normalized quotes down to the branch allow-list and relabels
// them. When filtering would drop everything but at least one quote exists,
// the single cheapest quote is promoted instead: the widget should only see
// zero rates when the upstream itself had none.
func curate(quotes []domain.RateQuote, international bool) []domain.CuratedRate {
	labels := domesticLabels
	if international {
		labels = internationalLabels
	}

	curated := make([]domain.CuratedRate, 0, len(quotes))
	for _, q := range quotes {
		label, ok := labels[q.ServiceID]
		if !ok {
			continue
		}
		curated = append(curated, toCurated(q, label))
	}

	if len(curated) == 0 && len(quotes) > 0 {
		cheapest := quotes[0] // quotes arrive sorted ascending
		curated = append(curated, toCurated(cheapest, anyLabel(cheapest)))
	}

	domain.SortCuratedByCost(curated)
	return curated
}

// anyLabel relabels a promoted quote when its id is known to either branch,
// and falls back to the upstream display name.
func anyLabel(q domain.RateQuote) string {
	if label, ok := domesticLabels[q.ServiceID]; ok {
		return label
	}
	if label, ok := internationalLabels[q.ServiceID]; ok {
		return label
	}
	return q.DisplayName
}

func toCurated(q domain.RateQuote, label string) domain.CuratedRate {
	return domain.CuratedRate{
		ID:   idPrefix + q.ServiceID,
		Name: label,
		Cost: q.Cost.Round(2).InexactFloat64(),
	}
}
