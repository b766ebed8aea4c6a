package contracts

import "sort"

// RawRow is one scraped indicator row before validation
type RawRow struct {
	Country   Country `json:"country"`
	Indicator string  `json:"indicator"`
	Last      string  `json:"last"`
	Previous  string  `json:"previous"`
}

// IndicatorRecord is a validated indicator value for one currency
type IndicatorRecord struct {
	Currency  Currency  `json:"currency"`
	Indicator Indicator `json:"indicator"`
	Last      float64   `json:"last"`
	Previous  float64   `json:"previous"`
}

// RecordKey identifies a record slot
type RecordKey struct {
	Currency  Currency
	Indicator Indicator
}

// Key returns the (currency, indicator) slot of the record
func (r IndicatorRecord) Key() RecordKey {
	return RecordKey{Currency: r.Currency, Indicator: r.Indicator}
}

// RecordSet is an immutable, ordered collection with one record per key
type RecordSet struct {
	records []IndicatorRecord
	index   map[RecordKey]int
}

// NewRecordSet orders records by currency table position then indicator.
// Later records for an existing key are ignored; callers deduplicate first.
func NewRecordSet(records []IndicatorRecord) *RecordSet {
	sorted := make([]IndicatorRecord, 0, len(records))
	seen := make(map[RecordKey]bool, len(records))
	for _, r := range records {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		sorted = append(sorted, r)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := currencyIndex(sorted[i].Currency), currencyIndex(sorted[j].Currency)
		if ci != cj {
			return ci < cj
		}
		return indicatorIndex(sorted[i].Indicator) < indicatorIndex(sorted[j].Indicator)
	})

	index := make(map[RecordKey]int, len(sorted))
	for i, r := range sorted {
		index[r.Key()] = i
	}

	return &RecordSet{records: sorted, index: index}
}

// Records returns a copy of the ordered records
func (s *RecordSet) Records() []IndicatorRecord {
	out := make([]IndicatorRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records
func (s *RecordSet) Len() int {
	return len(s.records)
}

// Lookup returns the record for a currency and indicator
func (s *RecordSet) Lookup(c Currency, ind Indicator) (IndicatorRecord, bool) {
	i, ok := s.index[RecordKey{Currency: c, Indicator: ind}]
	if !ok {
		return IndicatorRecord{}, false
	}
	return s.records[i], true
}

// ForCurrency returns the records of one currency in indicator order
func (s *RecordSet) ForCurrency(c Currency) []IndicatorRecord {
	var out []IndicatorRecord
	for _, r := range s.records {
		if r.Currency == c {
			out = append(out, r)
		}
	}
	return out
}
