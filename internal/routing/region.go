package routing

import "strings"

var euCountries = map[string]struct{}{
	"DE": {}, "FR": {}, "ES": {}, "IT": {}, "NL": {}, "BE": {}, "PT": {},
	"IE": {}, "AT": {}, "FI": {}, "GR": {}, "SE": {}, "DK": {}, "PL": {},
	"CZ": {}, "HU": {}, "RO": {}, "BG": {}, "SK": {}, "SI": {}, "HR": {},
	"LT": {}, "LV": {}, "EE": {}, "LU": {}, "CY": {}, "MT": {},
}

// RegionOf maps a country code to its routing region tag. Countries
// without a dedicated grouping route on their own upper-cased code.
func RegionOf(country string) string {
	c := strings.ToUpper(country)
	if c == "ZA" || c == "US" {
		return c
	}
	if _, ok := euCountries[c]; ok {
		return "EU"
	}
	return c
}
