package contracts

import "fmt"

// Indicator is a named macroeconomic statistic
type Indicator string

// Scored indicators
const (
	GDPGrowthRate    Indicator = "GDP Growth Rate"
	InflationRateMoM Indicator = "Inflation Rate MoM"
	InterestRate     Indicator = "Interest Rate"
	ManufacturingPMI Indicator = "Manufacturing PMI"
	ServicesPMI      Indicator = "Services PMI"
	RetailSalesMoM   Indicator = "Retail Sales MoM"
	UnemploymentRate Indicator = "Unemployment Rate"
)

// indicators is the display order
var indicators = []Indicator{
	GDPGrowthRate,
	InflationRateMoM,
	InterestRate,
	ManufacturingPMI,
	ServicesPMI,
	RetailSalesMoM,
	UnemploymentRate,
}

// Indicators returns the scored indicators in display order
func Indicators() []Indicator {
	out := make([]Indicator, len(indicators))
	copy(out, indicators)
	return out
}

// IsKnown reports whether the indicator belongs to the enumeration
func (i Indicator) IsKnown() bool {
	return indicatorIndex(i) < len(indicators)
}

func indicatorIndex(i Indicator) int {
	for idx, ind := range indicators {
		if ind == i {
			return idx
		}
	}
	return len(indicators)
}

// Polarity says which direction of change is bullish for the currency
type Polarity int

const (
	// PolarityLastMinusPrevious scores a rising value as +1
	PolarityLastMinusPrevious Polarity = iota + 1
	// PolarityPreviousMinusLast scores a falling value as +1
	PolarityPreviousMinusLast
)

func (p Polarity) String() string {
	switch p {
	case PolarityLastMinusPrevious:
		return "last-minus-previous"
	case PolarityPreviousMinusLast:
		return "previous-minus-last"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

var polarities = map[Indicator]Polarity{
	GDPGrowthRate:    PolarityLastMinusPrevious,
	InterestRate:     PolarityLastMinusPrevious,
	ManufacturingPMI: PolarityLastMinusPrevious,
	ServicesPMI:      PolarityLastMinusPrevious,
	RetailSalesMoM:   PolarityLastMinusPrevious,
	InflationRateMoM: PolarityPreviousMinusLast,
	UnemploymentRate: PolarityPreviousMinusLast,
}

// PolarityOf returns the polarity class of an indicator
func PolarityOf(i Indicator) (Polarity, error) {
	p, ok := polarities[i]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownIndicatorPolarity, string(i))
	}
	return p, nil
}
