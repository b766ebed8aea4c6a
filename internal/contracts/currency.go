package contracts

import "strings"

// Currency is a three-letter currency code
type Currency string

// Supported currencies
const (
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	NZD Currency = "NZD"
	USD Currency = "USD"
	CHF Currency = "CHF"

	// CurrencyUnknown is assigned to rows from a country outside the static table
	CurrencyUnknown Currency = "Unknown"
)

// Country is a source country identifier as used in indicator page URLs
type Country string

// countryCurrencies is the static country → currency table in traversal order
// ⭐ SSOT: 국가/통화 매핑은 여기서만
var countryCurrencies = []struct {
	country  Country
	currency Currency
}{
	{"australia", AUD},
	{"canada", CAD},
	{"euro-area", EUR},
	{"united-kingdom", GBP},
	{"japan", JPY},
	{"new-zealand", NZD},
	{"united-states", USD},
	{"switzerland", CHF},
}

// Countries returns the supported countries in traversal order
func Countries() []Country {
	out := make([]Country, len(countryCurrencies))
	for i, cc := range countryCurrencies {
		out[i] = cc.country
	}
	return out
}

// Currencies returns the supported currencies in table order
func Currencies() []Currency {
	out := make([]Currency, len(countryCurrencies))
	for i, cc := range countryCurrencies {
		out[i] = cc.currency
	}
	return out
}

// CurrencyForCountry maps a country to its currency.
// Lookup is case-insensitive; unknown countries resolve to CurrencyUnknown.
func CurrencyForCountry(country Country) Currency {
	key := Country(strings.ToLower(strings.TrimSpace(string(country))))
	for _, cc := range countryCurrencies {
		if cc.country == key {
			return cc.currency
		}
	}
	return CurrencyUnknown
}

// CountryForCurrency is the reverse lookup; ok is false for unsupported codes
func CountryForCurrency(c Currency) (Country, bool) {
	key := Currency(strings.ToUpper(string(c)))
	for _, cc := range countryCurrencies {
		if cc.currency == key {
			return cc.country, true
		}
	}
	return "", false
}

// IsSupported reports whether c is one of the eight scored currencies
func (c Currency) IsSupported() bool {
	return currencyIndex(c) < len(countryCurrencies)
}

// currencyIndex orders currencies by table position, Unknown and others last
func currencyIndex(c Currency) int {
	for i, cc := range countryCurrencies {
		if cc.currency == c {
			return i
		}
	}
	return len(countryCurrencies)
}
