package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyForCountry(t *testing.T) {
	tests := []struct {
		country Country
		want    Currency
	}{
		{"australia", AUD},
		{"euro-area", EUR},
		{"United-States", USD},
		{" switzerland ", CHF},
		{"brazil", CurrencyUnknown},
		{"", CurrencyUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.country), func(t *testing.T) {
			assert.Equal(t, tt.want, CurrencyForCountry(tt.country))
		})
	}
}

func TestEnumerations(t *testing.T) {
	assert.Len(t, Countries(), 8)
	assert.Equal(t, []Currency{AUD, CAD, EUR, GBP, JPY, NZD, USD, CHF}, Currencies())
	assert.Len(t, Indicators(), 7)
	assert.Len(t, Pairs(), 27)

	for _, p := range Pairs() {
		assert.True(t, p.Base().IsSupported(), "base of %s", p)
		assert.True(t, p.Quote().IsSupported(), "quote of %s", p)
	}

	assert.False(t, CurrencyUnknown.IsSupported())

	country, ok := CountryForCurrency("jpy")
	assert.True(t, ok)
	assert.Equal(t, Country("japan"), country)
}

func TestPolarityOf(t *testing.T) {
	for _, ind := range Indicators() {
		_, err := PolarityOf(ind)
		assert.NoError(t, err, "indicator %q", ind)
	}

	p, _ := PolarityOf(UnemploymentRate)
	assert.Equal(t, PolarityPreviousMinusLast, p)
	p, _ = PolarityOf(InterestRate)
	assert.Equal(t, PolarityLastMinusPrevious, p)

	_, err := PolarityOf("Consumer Confidence")
	assert.ErrorIs(t, err, ErrUnknownIndicatorPolarity)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		text   string
		want   Pair
		wantOK bool
	}{
		{" eurusd ", "EURUSD", true},
		{"GBPjpy", "GBPJPY", true},
		{"\tnzdcad\n", "NZDCAD", true},
		{"USDEUR", "", false},
		{"EUR/USD", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePair(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPairParts(t *testing.T) {
	assert.Equal(t, EUR, Pair("EURGBP").Base())
	assert.Equal(t, GBP, Pair("EURGBP").Quote())
	assert.Equal(t, CurrencyUnknown, Pair("EUR").Base())
}

func TestRecordSetOrderingAndLookup(t *testing.T) {
	set := NewRecordSet([]IndicatorRecord{
		{Currency: CHF, Indicator: InterestRate, Last: 1.0, Previous: 1.25},
		{Currency: CurrencyUnknown, Indicator: GDPGrowthRate, Last: 1, Previous: 1},
		{Currency: AUD, Indicator: UnemploymentRate, Last: 4.1, Previous: 4.0},
		{Currency: AUD, Indicator: GDPGrowthRate, Last: 0.2, Previous: 0.3},
		{Currency: AUD, Indicator: GDPGrowthRate, Last: 9, Previous: 9},
	})

	records := set.Records()
	require.Len(t, records, 4)
	assert.Equal(t, RecordKey{AUD, GDPGrowthRate}, records[0].Key())
	assert.Equal(t, 0.2, records[0].Last)
	assert.Equal(t, RecordKey{AUD, UnemploymentRate}, records[1].Key())
	assert.Equal(t, RecordKey{CHF, InterestRate}, records[2].Key())
	assert.Equal(t, CurrencyUnknown, records[3].Currency)

	rec, ok := set.Lookup(CHF, InterestRate)
	assert.True(t, ok)
	assert.Equal(t, 1.25, rec.Previous)

	_, ok = set.Lookup(USD, InterestRate)
	assert.False(t, ok)

	assert.Len(t, set.ForCurrency(AUD), 2)
}

func TestErrorsMatchSentinels(t *testing.T) {
	var err error = &MissingIndicatorError{Currency: JPY, Indicator: ServicesPMI}
	assert.ErrorIs(t, err, ErrMissingIndicatorForCurrency)
	assert.Contains(t, err.Error(), "JPY")
	assert.Contains(t, err.Error(), "Services PMI")

	wrapped := &PairError{Pair: "USDJPY", Err: err}
	var missing *MissingIndicatorError
	require.True(t, errors.As(wrapped, &missing))
	assert.Equal(t, JPY, missing.Currency)

	malformed := &MalformedValueError{Currency: USD, Indicator: InterestRate, Field: "last", Value: "n/a"}
	assert.ErrorIs(t, malformed, ErrMalformedIndicatorValue)
	assert.Contains(t, malformed.Error(), `last="n/a"`)
}

func TestPairScoreTable(t *testing.T) {
	table := NewPairScoreTable(
		[]PairScore{
			{Pair: "EURUSD", Base: EUR, Quote: USD, IRDivergence: -1, FinalScore: -5},
			{Pair: "AUDUSD", Base: AUD, Quote: USD, IRDivergence: 0, FinalScore: 0},
			{Pair: "GBPUSD", Base: GBP, Quote: USD, IRDivergence: 1, FinalScore: 2},
		},
		map[Pair]error{
			"USDJPY": &PairError{Pair: "USDJPY", Err: &MissingIndicatorError{Currency: JPY, Indicator: InterestRate}},
		},
	)

	got, err := table.Find(" eurusd ")
	require.NoError(t, err)
	assert.Equal(t, -5, got.FinalScore)
	assert.Equal(t, "bearish", got.Bias())

	tie, err := table.Find("AUDUSD")
	require.NoError(t, err)
	assert.Equal(t, "neutral", tie.Bias())

	_, err = table.Find("xxxyyy")
	assert.ErrorIs(t, err, ErrUnknownPair)

	_, err = table.Find("usdjpy")
	assert.ErrorIs(t, err, ErrMissingIndicatorForCurrency)
	assert.NotErrorIs(t, err, ErrUnknownPair)

	sorted := table.ByFinalScore()
	assert.Equal(t, []Pair{"GBPUSD", "AUDUSD", "EURUSD"}, []Pair{sorted[0].Pair, sorted[1].Pair, sorted[2].Pair})

	min, max, ok := table.MinMax()
	assert.True(t, ok)
	assert.Equal(t, -5, min)
	assert.Equal(t, 2, max)

	require.Len(t, table.Failures(), 1)
	assert.Equal(t, Pair("USDJPY"), table.Failures()[0].Pair)
}

func TestCurrencyScoreTable(t *testing.T) {
	table := NewCurrencyScoreTable(
		[]CurrencyScore{{Currency: USD, Total: 3, Indicators: []IndicatorScore{{Indicator: InterestRate, Score: 1}}}},
		map[Currency]error{NZD: &MissingIndicatorError{Currency: NZD, Indicator: GDPGrowthRate}},
	)

	usd, err := table.Get(USD)
	require.NoError(t, err)
	assert.Equal(t, 3, usd.Total)
	score, ok := usd.ScoreFor(InterestRate)
	assert.True(t, ok)
	assert.Equal(t, 1, score)

	_, err = table.Get(NZD)
	var missing *MissingIndicatorError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, GDPGrowthRate, missing.Indicator)

	_, err = table.Get(CAD)
	assert.ErrorIs(t, err, ErrMissingIndicatorForCurrency)
}
