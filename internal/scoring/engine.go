// Package scoring turns indicator records into currency and pair scores.
// Every function is pure and safe for concurrent use.
// ⭐ SSOT: 매크로 점수 계산은 여기서만
package scoring

import (
	"fmt"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// Sign returns +1, -1 or 0 using exact comparison with zero
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Score returns the directional score of one indicator reading
func Score(ind contracts.Indicator, last, previous float64) (int, error) {
	polarity, err := contracts.PolarityOf(ind)
	if err != nil {
		return 0, err
	}

	switch polarity {
	case contracts.PolarityLastMinusPrevious:
		return Sign(last - previous), nil
	case contracts.PolarityPreviousMinusLast:
		return Sign(previous - last), nil
	default:
		return 0, fmt.Errorf("%w: %q has polarity %s", contracts.ErrUnknownIndicatorPolarity, string(ind), polarity)
	}
}

// ScoreCurrency sums the seven indicator scores of one currency.
// A missing indicator fails the currency rather than counting as neutral.
func ScoreCurrency(records *contracts.RecordSet, c contracts.Currency) (contracts.CurrencyScore, error) {
	result := contracts.CurrencyScore{Currency: c}

	for _, ind := range contracts.Indicators() {
		rec, ok := records.Lookup(c, ind)
		if !ok {
			return contracts.CurrencyScore{}, &contracts.MissingIndicatorError{Currency: c, Indicator: ind}
		}

		s, err := Score(ind, rec.Last, rec.Previous)
		if err != nil {
			return contracts.CurrencyScore{}, fmt.Errorf("score %s %q: %w", c, string(ind), err)
		}

		result.Indicators = append(result.Indicators, contracts.IndicatorScore{Indicator: ind, Score: s})
		result.Total += s
	}

	return result, nil
}

// ScoreCurrencies scores every supported currency in table order
func ScoreCurrencies(records *contracts.RecordSet) *contracts.CurrencyScoreTable {
	var rows []contracts.CurrencyScore
	failures := make(map[contracts.Currency]error)

	for _, c := range contracts.Currencies() {
		score, err := ScoreCurrency(records, c)
		if err != nil {
			failures[c] = err
			continue
		}
		rows = append(rows, score)
	}

	return contracts.NewCurrencyScoreTable(rows, failures)
}

// ScorePair combines the currency score differential with the interest rate divergence
func ScorePair(p contracts.Pair, currencies *contracts.CurrencyScoreTable, records *contracts.RecordSet) (contracts.PairScore, error) {
	base, quote := p.Base(), p.Quote()

	baseScore, err := currencies.Get(base)
	if err != nil {
		return contracts.PairScore{}, &contracts.PairError{Pair: p, Err: err}
	}
	quoteScore, err := currencies.Get(quote)
	if err != nil {
		return contracts.PairScore{}, &contracts.PairError{Pair: p, Err: err}
	}

	baseIR, ok := records.Lookup(base, contracts.InterestRate)
	if !ok {
		return contracts.PairScore{}, &contracts.PairError{Pair: p, Err: &contracts.MissingIndicatorError{Currency: base, Indicator: contracts.InterestRate}}
	}
	quoteIR, ok := records.Lookup(quote, contracts.InterestRate)
	if !ok {
		return contracts.PairScore{}, &contracts.PairError{Pair: p, Err: &contracts.MissingIndicatorError{Currency: quote, Indicator: contracts.InterestRate}}
	}

	divergence := Sign(baseIR.Last - quoteIR.Last)

	return contracts.PairScore{
		Pair:         p,
		Base:         base,
		Quote:        quote,
		IRDivergence: divergence,
		FinalScore:   baseScore.Total - quoteScore.Total + divergence,
	}, nil
}

// ScorePairs scores every pair of the fixed enumeration
func ScorePairs(currencies *contracts.CurrencyScoreTable, records *contracts.RecordSet) *contracts.PairScoreTable {
	var rows []contracts.PairScore
	failures := make(map[contracts.Pair]error)

	for _, p := range contracts.Pairs() {
		score, err := ScorePair(p, currencies, records)
		if err != nil {
			failures[p] = err
			continue
		}
		rows = append(rows, score)
	}

	return contracts.NewPairScoreTable(rows, failures)
}
