// Package normalizer turns scraped indicator rows into validated records.
package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// Result is the outcome of one normalization pass
type Result struct {
	Records *contracts.RecordSet
	// Dropped lists rows rejected as malformed, including conflicting duplicates
	Dropped []*contracts.MalformedValueError
	// Ignored counts rows whose indicator is outside the scored set
	Ignored int
}

// Normalize validates raw rows, maps countries to currencies and deduplicates.
// A malformed row is dropped and reported; the rest of the batch is kept.
// ⭐ SSOT: 원시 행 → 지표 레코드 변환은 여기서만
func Normalize(rows []contracts.RawRow) *Result {
	res := &Result{}

	kept := make([]contracts.IndicatorRecord, 0, len(rows))
	position := make(map[contracts.RecordKey]int)
	conflicts := make(map[contracts.RecordKey][]contracts.IndicatorRecord)

	for _, row := range rows {
		ind := contracts.Indicator(strings.TrimSpace(row.Indicator))
		if !ind.IsKnown() {
			res.Ignored++
			continue
		}

		cur := contracts.CurrencyForCountry(row.Country)

		last, err := parseValue(row.Last)
		if err != nil {
			res.Dropped = append(res.Dropped, malformed(row, cur, ind, "last", row.Last, err))
			continue
		}
		previous, err := parseValue(row.Previous)
		if err != nil {
			res.Dropped = append(res.Dropped, malformed(row, cur, ind, "previous", row.Previous, err))
			continue
		}

		rec := contracts.IndicatorRecord{Currency: cur, Indicator: ind, Last: last, Previous: previous}
		key := rec.Key()

		if i, seen := position[key]; seen {
			if kept[i] == rec {
				continue
			}
			if !containsRecord(conflicts[key], rec) {
				if len(conflicts[key]) == 0 {
					conflicts[key] = append(conflicts[key], kept[i])
				}
				conflicts[key] = append(conflicts[key], rec)
			}
			continue
		}

		position[key] = len(kept)
		kept = append(kept, rec)
	}

	if len(conflicts) > 0 {
		filtered := kept[:0]
		for _, rec := range kept {
			versions, conflicting := conflicts[rec.Key()]
			if !conflicting {
				filtered = append(filtered, rec)
				continue
			}
			res.Dropped = append(res.Dropped, &contracts.MalformedValueError{
				Currency:  rec.Currency,
				Indicator: rec.Indicator,
				Field:     "conflict",
				Value:     describeVersions(versions),
			})
		}
		kept = filtered
	}

	res.Records = contracts.NewRecordSet(kept)
	return res
}

// parseValue reads a finite float from stripped cell text
func parseValue(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return v, nil
}

func malformed(row contracts.RawRow, cur contracts.Currency, ind contracts.Indicator, field, value string, err error) *contracts.MalformedValueError {
	return &contracts.MalformedValueError{
		Country:   row.Country,
		Currency:  cur,
		Indicator: ind,
		Field:     field,
		Value:     value,
		Err:       err,
	}
}

func containsRecord(list []contracts.IndicatorRecord, rec contracts.IndicatorRecord) bool {
	for _, r := range list {
		if r == rec {
			return true
		}
	}
	return false
}

func describeVersions(versions []contracts.IndicatorRecord) string {
	parts := make([]string, len(versions))
	for i, v := range versions {
		parts[i] = fmt.Sprintf("last=%g previous=%g", v.Last, v.Previous)
	}
	return strings.Join(parts, " | ")
}
