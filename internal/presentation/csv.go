package presentation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// Table names accepted by WriteCSV
const (
	TableRecords    = "records"
	TableCurrencies = "currencies"
	TablePairs      = "pairs"
)

// ErrUnknownTable is returned for an export name outside the three tables
var ErrUnknownTable = fmt.Errorf("unknown table (valid: %s, %s, %s)", TableRecords, TableCurrencies, TablePairs)

// Tables bundles what the exporters read
type Tables struct {
	Records    *contracts.RecordSet
	Currencies *contracts.CurrencyScoreTable
	Pairs      *contracts.PairScoreTable
}

// WriteCSV writes one named table
func WriteCSV(w io.Writer, name string, t Tables) error {
	switch name {
	case TableRecords:
		return WriteRecordsCSV(w, t.Records)
	case TableCurrencies:
		return WriteCurrenciesCSV(w, t.Currencies)
	case TablePairs:
		return WritePairsCSV(w, t.Pairs)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
}

// WriteRecordsCSV writes one line per indicator record
func WriteRecordsCSV(w io.Writer, set *contracts.RecordSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"currency", "indicator", "last", "previous"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range set.Records() {
		line := []string{
			string(r.Currency),
			string(r.Indicator),
			strconv.FormatFloat(r.Last, 'f', -1, 64),
			strconv.FormatFloat(r.Previous, 'f', -1, 64),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCurrenciesCSV writes one column per indicator plus the total
func WriteCurrenciesCSV(w io.Writer, table *contracts.CurrencyScoreTable) error {
	cw := csv.NewWriter(w)

	header := []string{"currency"}
	for _, ind := range contracts.Indicators() {
		header = append(header, string(ind))
	}
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range table.Rows() {
		line := []string{string(row.Currency)}
		for _, ind := range contracts.Indicators() {
			s, _ := row.ScoreFor(ind)
			line = append(line, strconv.Itoa(s))
		}
		line = append(line, strconv.Itoa(row.Total))
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write currency: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePairsCSV writes the pair table in enumeration order
func WritePairsCSV(w io.Writer, table *contracts.PairScoreTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pair", "base", "quote", "ir_divergence", "final_score"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range table.Rows() {
		line := []string{
			string(row.Pair),
			string(row.Base),
			string(row.Quote),
			strconv.Itoa(row.IRDivergence),
			strconv.Itoa(row.FinalScore),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write pair: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
