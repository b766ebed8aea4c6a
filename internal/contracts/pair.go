package contracts

import "strings"

// Pair is an ordered base+quote currency pair such as EURUSD
type Pair string

// pairs is the fixed pair enumeration in display order
// ⭐ SSOT: 통화쌍 목록은 여기서만
var pairs = []Pair{
	"EURUSD", "AUDUSD", "GBPUSD", "NZDUSD", "USDCAD", "USDCHF", "USDJPY",
	"GBPAUD", "GBPCAD", "GBPJPY", "GBPNZD", "GBPCHF",
	"EURAUD", "EURCAD", "EURJPY", "EURNZD", "EURCHF",
	"AUDJPY", "CADJPY", "NZDJPY", "CHFJPY",
	"AUDCAD", "AUDNZD", "AUDCHF", "NZDCHF", "NZDCAD",
	"EURGBP",
}

// Pairs returns the fixed pair enumeration
func Pairs() []Pair {
	out := make([]Pair, len(pairs))
	copy(out, pairs)
	return out
}

// Base returns the first currency of the pair
func (p Pair) Base() Currency {
	if len(p) != 6 {
		return CurrencyUnknown
	}
	return Currency(p[:3])
}

// Quote returns the second currency of the pair
func (p Pair) Quote() Currency {
	if len(p) != 6 {
		return CurrencyUnknown
	}
	return Currency(p[3:])
}

// IsKnown reports whether p is in the fixed enumeration
func (p Pair) IsKnown() bool {
	for _, known := range pairs {
		if known == p {
			return true
		}
	}
	return false
}

// ParsePair resolves user-supplied text to a known pair.
// Whitespace is trimmed and case folded; ok is false when nothing matches.
func ParsePair(text string) (Pair, bool) {
	candidate := Pair(strings.ToUpper(strings.TrimSpace(text)))
	if !candidate.IsKnown() {
		return "", false
	}
	return candidate, true
}
