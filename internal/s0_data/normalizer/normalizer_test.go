package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradingfury/macroscore/internal/contracts"
)

func row(country, indicator, last, previous string) contracts.RawRow {
	return contracts.RawRow{
		Country:   contracts.Country(country),
		Indicator: indicator,
		Last:      last,
		Previous:  previous,
	}
}

func TestNormalize_FiltersAndMaps(t *testing.T) {
	res := Normalize([]contracts.RawRow{
		row("united-states", "Interest Rate", "5.0", "5.25"),
		row("united-states", "Consumer Confidence", "98", "97"),
		row("euro-area", " Unemployment Rate ", " 6.5", "6.6 "),
		row("brazil", "GDP Growth Rate", "0.1", "0.2"),
	})

	assert.Equal(t, 1, res.Ignored)
	assert.Empty(t, res.Dropped)

	records := res.Records.Records()
	require.Len(t, records, 3)

	// Ordered by currency table, Unknown last
	assert.Equal(t, contracts.RecordKey{Currency: contracts.EUR, Indicator: contracts.UnemploymentRate}, records[0].Key())
	assert.Equal(t, 6.5, records[0].Last)
	assert.Equal(t, contracts.RecordKey{Currency: contracts.USD, Indicator: contracts.InterestRate}, records[1].Key())
	assert.Equal(t, contracts.CurrencyUnknown, records[2].Currency)
}

func TestNormalize_MalformedRowIsDropped(t *testing.T) {
	res := Normalize([]contracts.RawRow{
		row("japan", "Interest Rate", "0.25", "0.1"),
		row("japan", "Services PMI", "n/a", "50.1"),
		row("japan", "Manufacturing PMI", "49.0", ""),
		row("japan", "Retail Sales MoM", "NaN", "1"),
	})

	require.Len(t, res.Dropped, 3)
	for _, d := range res.Dropped {
		assert.ErrorIs(t, d, contracts.ErrMalformedIndicatorValue)
		assert.Equal(t, contracts.JPY, d.Currency)
	}
	assert.Equal(t, "last", res.Dropped[0].Field)
	assert.Equal(t, "previous", res.Dropped[1].Field)

	assert.Equal(t, 1, res.Records.Len())
	_, ok := res.Records.Lookup(contracts.JPY, contracts.InterestRate)
	assert.True(t, ok)
}

func TestNormalize_ExactDuplicatesCollapse(t *testing.T) {
	res := Normalize([]contracts.RawRow{
		row("canada", "GDP Growth Rate", "0.4", "0.3"),
		row("canada", "GDP Growth Rate", "0.40", "0.3"),
	})

	assert.Empty(t, res.Dropped)
	assert.Equal(t, 1, res.Records.Len())
}

func TestNormalize_ConflictingDuplicatesAreDropped(t *testing.T) {
	res := Normalize([]contracts.RawRow{
		row("canada", "GDP Growth Rate", "0.4", "0.3"),
		row("canada", "Interest Rate", "2.75", "3.0"),
		row("canada", "GDP Growth Rate", "0.5", "0.3"),
		row("canada", "GDP Growth Rate", "0.5", "0.3"),
	})

	require.Len(t, res.Dropped, 1)
	conflict := res.Dropped[0]
	assert.Equal(t, "conflict", conflict.Field)
	assert.Equal(t, contracts.GDPGrowthRate, conflict.Indicator)
	assert.Contains(t, conflict.Value, "last=0.4 previous=0.3")
	assert.Contains(t, conflict.Value, "last=0.5 previous=0.3")

	_, ok := res.Records.Lookup(contracts.CAD, contracts.GDPGrowthRate)
	assert.False(t, ok)
	_, ok = res.Records.Lookup(contracts.CAD, contracts.InterestRate)
	assert.True(t, ok)
}

func TestNormalize_Idempotent(t *testing.T) {
	source := []contracts.RawRow{
		row("australia", "GDP Growth Rate", "0.2", "0.3"),
		row("australia", "Interest Rate", "4.35", "4.35"),
		row("new-zealand", "Unemployment Rate", "4.6", "4.3"),
		row("new-zealand", "Inflation Rate MoM", "0.5", "0.4"),
		row("switzerland", "Retail Sales MoM", "-0.1", "0.8"),
	}

	once := Normalize(source)
	doubled := Normalize(append(append([]contracts.RawRow{}, source...), source...))

	assert.Equal(t, once.Records.Records(), doubled.Records.Records())
	assert.Empty(t, doubled.Dropped)
}

func TestNormalize_Empty(t *testing.T) {
	res := Normalize(nil)
	require.NotNil(t, res.Records)
	assert.Equal(t, 0, res.Records.Len())
}
