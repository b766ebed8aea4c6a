package contracts

import (
	"fmt"
	"sort"
)

// IndicatorScore is the directional score of one indicator
type IndicatorScore struct {
	Indicator Indicator `json:"indicator"`
	Score     int       `json:"score"` // -1, 0 or +1
}

// CurrencyScore holds the seven indicator scores of a currency and their sum
type CurrencyScore struct {
	Currency   Currency         `json:"currency"`
	Indicators []IndicatorScore `json:"indicators"`
	Total      int              `json:"total"`
}

// ScoreFor returns the score of one indicator
func (s CurrencyScore) ScoreFor(ind Indicator) (int, bool) {
	for _, is := range s.Indicators {
		if is.Indicator == ind {
			return is.Score, true
		}
	}
	return 0, false
}

// CurrencyScoreTable maps each supported currency to its score or its failure
// ⭐ SSOT: 통화 점수표
type CurrencyScoreTable struct {
	rows     []CurrencyScore
	failures map[Currency]error
}

// NewCurrencyScoreTable builds a table; rows must be in currency order
func NewCurrencyScoreTable(rows []CurrencyScore, failures map[Currency]error) *CurrencyScoreTable {
	f := make(map[Currency]error, len(failures))
	for c, err := range failures {
		f[c] = err
	}
	r := make([]CurrencyScore, len(rows))
	copy(r, rows)
	return &CurrencyScoreTable{rows: r, failures: f}
}

// Rows returns the successfully scored currencies in table order
func (t *CurrencyScoreTable) Rows() []CurrencyScore {
	out := make([]CurrencyScore, len(t.rows))
	copy(out, t.rows)
	return out
}

// Get returns the score of a currency, or the error that prevented it
func (t *CurrencyScoreTable) Get(c Currency) (CurrencyScore, error) {
	for _, row := range t.rows {
		if row.Currency == c {
			return row, nil
		}
	}
	if err, ok := t.failures[c]; ok {
		return CurrencyScore{}, err
	}
	return CurrencyScore{}, fmt.Errorf("%w: %s was not scored", ErrMissingIndicatorForCurrency, c)
}

// Failures returns the per-currency errors in currency order
func (t *CurrencyScoreTable) Failures() []CurrencyFailure {
	out := make([]CurrencyFailure, 0, len(t.failures))
	for c, err := range t.failures {
		out = append(out, CurrencyFailure{Currency: c, Err: err})
	}
	sort.Slice(out, func(i, j int) bool {
		return currencyIndex(out[i].Currency) < currencyIndex(out[j].Currency)
	})
	return out
}

// CurrencyFailure pairs a currency with the error that blocked its score
type CurrencyFailure struct {
	Currency Currency
	Err      error
}

// PairScore is the combined divergence score of a pair
type PairScore struct {
	Pair         Pair     `json:"pair"`
	Base         Currency `json:"base"`
	Quote        Currency `json:"quote"`
	IRDivergence int      `json:"ir_divergence"`
	FinalScore   int      `json:"final_score"`
}

// Bias reads the final score as a direction
func (p PairScore) Bias() string {
	switch {
	case p.FinalScore > 0:
		return "bullish"
	case p.FinalScore < 0:
		return "bearish"
	default:
		return "neutral"
	}
}

// PairScoreTable maps each pair to its score or its failure
// ⭐ SSOT: 통화쌍 최종 점수표
type PairScoreTable struct {
	rows     []PairScore
	failures map[Pair]error
}

// NewPairScoreTable builds a table; rows must be in pair order
func NewPairScoreTable(rows []PairScore, failures map[Pair]error) *PairScoreTable {
	f := make(map[Pair]error, len(failures))
	for p, err := range failures {
		f[p] = err
	}
	r := make([]PairScore, len(rows))
	copy(r, rows)
	return &PairScoreTable{rows: r, failures: f}
}

// Rows returns the scored pairs in enumeration order
func (t *PairScoreTable) Rows() []PairScore {
	out := make([]PairScore, len(t.rows))
	copy(out, t.rows)
	return out
}

// Get returns the score of a known pair, or the error that prevented it
func (t *PairScoreTable) Get(p Pair) (PairScore, error) {
	for _, row := range t.rows {
		if row.Pair == p {
			return row, nil
		}
	}
	if err, ok := t.failures[p]; ok {
		return PairScore{}, err
	}
	return PairScore{}, fmt.Errorf("%w: %s", ErrUnknownPair, p)
}

// Find resolves user text to a pair and returns its score.
// Text that matches no known pair yields ErrUnknownPair.
func (t *PairScoreTable) Find(text string) (PairScore, error) {
	p, ok := ParsePair(text)
	if !ok {
		return PairScore{}, fmt.Errorf("%w: %q", ErrUnknownPair, text)
	}
	return t.Get(p)
}

// Failures returns the per-pair errors in pair order
func (t *PairScoreTable) Failures() []PairFailure {
	out := make([]PairFailure, 0, len(t.failures))
	for _, p := range pairs {
		if err, ok := t.failures[p]; ok {
			out = append(out, PairFailure{Pair: p, Err: err})
		}
	}
	return out
}

// PairFailure pairs a pair with the error that blocked its score
type PairFailure struct {
	Pair Pair
	Err  error
}

// ByFinalScore returns the rows sorted by final score, highest first.
// Equal scores keep enumeration order.
func (t *PairScoreTable) ByFinalScore() []PairScore {
	out := t.Rows()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

// MinMax returns the lowest and highest final score; ok is false when empty
func (t *PairScoreTable) MinMax() (min, max int, ok bool) {
	if len(t.rows) == 0 {
		return 0, 0, false
	}
	min, max = t.rows[0].FinalScore, t.rows[0].FinalScore
	for _, row := range t.rows[1:] {
		if row.FinalScore < min {
			min = row.FinalScore
		}
		if row.FinalScore > max {
			max = row.FinalScore
		}
	}
	return min, max, true
}
