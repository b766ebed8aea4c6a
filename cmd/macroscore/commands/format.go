package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const lineWidth = 59

// PrintSnapshotHeader prints the snapshot identity block
func PrintSnapshotHeader(w io.Writer, title string, snap *pipeline.Snapshot) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s\n", title)
	PrintSeparator(w)
	fmt.Fprintf(w, "  Snapshot  : %s\n", snap.ID)
	fmt.Fprintf(w, "  Generated : %s\n", snap.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Records   : %d (dropped %d)\n", snap.Records.Len(), len(snap.Dropped))
	if snap.Quality != nil {
		fmt.Fprintf(w, "  Quality   : %.2f\n", snap.Quality.QualityScore)
	}
	PrintSeparator(w)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", lineWidth))
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("═", lineWidth))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "⚠️  %s\n", message)
	fmt.Fprintln(w)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintf(w, "ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// PrintList prints a bulleted list
func PrintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// shortIndicator is the column label for an indicator
var shortIndicator = map[contracts.Indicator]string{
	contracts.GDPGrowthRate:    "GDP",
	contracts.InflationRateMoM: "CPI MoM",
	contracts.InterestRate:     "Rate",
	contracts.ManufacturingPMI: "Mfg PMI",
	contracts.ServicesPMI:      "Svc PMI",
	contracts.RetailSalesMoM:   "Retail",
	contracts.UnemploymentRate: "Unemp",
}

// PrintEconomicData prints last/previous values, one row per indicator
func PrintEconomicData(w io.Writer, set *contracts.RecordSet) {
	columns := []string{"Indicator"}
	widths := []int{20}
	for _, c := range contracts.Currencies() {
		columns = append(columns, string(c))
		widths = append(widths, 13)
	}
	PrintTableHeader(w, columns, widths)

	for _, ind := range contracts.Indicators() {
		row := []string{string(ind)}
		for _, c := range contracts.Currencies() {
			rec, ok := set.Lookup(c, ind)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, formatValue(rec.Last)+" / "+formatValue(rec.Previous))
		}
		PrintTableRow(w, row, widths)
	}
}

// PrintCurrencyScores prints the currency score table; failed currencies are listed below it
func PrintCurrencyScores(w io.Writer, table *contracts.CurrencyScoreTable) {
	columns := []string{"Currency"}
	widths := []int{8}
	for _, ind := range contracts.Indicators() {
		columns = append(columns, shortIndicator[ind])
		widths = append(widths, 7)
	}
	columns = append(columns, "Total")
	widths = append(widths, 5)
	PrintTableHeader(w, columns, widths)

	for _, row := range table.Rows() {
		values := []string{string(row.Currency)}
		for _, ind := range contracts.Indicators() {
			s, _ := row.ScoreFor(ind)
			values = append(values, formatScore(s))
		}
		values = append(values, formatScore(row.Total))
		PrintTableRow(w, values, widths)
	}

	if failures := table.Failures(); len(failures) > 0 {
		items := make([]string, 0, len(failures))
		for _, f := range failures {
			items = append(items, f.Err.Error())
		}
		PrintWarning(w, "Currencies without a score:")
		PrintList(w, items)
	}
}

// PrintPairScores prints pair rows with the currency totals they came from
func PrintPairScores(w io.Writer, rows []contracts.PairScore, currencies *contracts.CurrencyScoreTable) {
	widths := []int{8, 10, 11, 13, 11, 8}
	PrintTableHeader(w, []string{"Pair", "Base Score", "Quote Score", "IR Divergence", "Final Score", "Bias"}, widths)

	for _, row := range rows {
		base, _ := currencies.Get(row.Base)
		quote, _ := currencies.Get(row.Quote)
		PrintTableRow(w, []string{
			string(row.Pair),
			formatScore(base.Total),
			formatScore(quote.Total),
			formatScore(row.IRDivergence),
			formatScore(row.FinalScore),
			row.Bias(),
		}, widths)
	}
}

// PrintPairFailures lists pairs that could not be scored
func PrintPairFailures(w io.Writer, failures []contracts.PairFailure) {
	if len(failures) == 0 {
		return
	}
	items := make([]string, 0, len(failures))
	for _, f := range failures {
		items = append(items, f.Err.Error())
	}
	PrintWarning(w, "Pairs without a score:")
	PrintList(w, items)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScore(s int) string {
	if s > 0 {
		return "+" + strconv.Itoa(s)
	}
	return strconv.Itoa(s)
}
