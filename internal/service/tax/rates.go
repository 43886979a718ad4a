package tax

// Standard VAT rates per EU member state, percent. Each destination gets its
// own country's rate; a flat default applies only to unlisted bloc members.
var euStandardRates = map[string]float64{
	"AT": 20, "BE": 21, "BG": 20, "HR": 25, "CY": 19, "CZ": 21,
	"DK": 25, "EE": 22, "FI": 25.5, "FR": 20, "DE": 19, "GR": 24,
	"HU": 27, "IE": 23, "IT": 22, "LV": 21, "LT": 21, "LU": 17,
	"MT": 18, "NL": 21, "PL": 23, "PT": 23, "RO": 19, "SK": 23,
	"SI": 22, "ES": 21, "SE": 25,
}

// StandardRate returns the destination country's standard VAT rate, falling
// back to the provided default for bloc members missing from the table.
func StandardRate(country string, defaultRate float64) float64 {
	if rate, ok := euStandardRates[country]; ok {
		return rate
	}
	return defaultRate
}
