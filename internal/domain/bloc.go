package domain

// euCountries is the trade-bloc set: destinations in it are treated as
// domestic-equivalent for customs purposes.
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {},
}

// InTradeBloc reports whether the country code is an EU member.
func InTradeBloc(country string) bool {
	_, ok := euCountries[country]
	return ok
}

// IsInternational reports whether a shipment between the two countries needs
// customs clearance. Same-country shipments never do; shipments where both
// ends are inside the trade bloc are treated as domestic-equivalent.
func IsInternational(origin, destination string) bool {
	if origin == destination {
		return false
	}
	if InTradeBloc(origin) && InTradeBloc(destination) {
		return false
	}
	return true
}
