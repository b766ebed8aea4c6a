package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/internal/presentation"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "지표 수집 후 점수표 출력",
	Long: `모든 국가의 지표 페이지를 한 번 수집하고 세 개의 표를 출력합니다.

출력:
- Economic Data: 지표별 last / previous
- Currency Scores: 지표별 방향 점수와 합계
- Final Scoring: 통화쌍별 금리차와 최종 점수

Example:
  go run ./cmd/macroscore score
  go run ./cmd/macroscore score --pair eurusd
  go run ./cmd/macroscore score --watchlist majors.yaml --csv ./out
  go run ./cmd/macroscore score --strict`,
	RunE: runScore,
}

var (
	scorePair      string
	scoreWatchlist string
	scoreCSVDir    string
	scoreStrict    bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	// Flags
	scoreCmd.Flags().StringVar(&scorePair, "pair", "", "한 통화쌍만 출력 (예: EURUSD)")
	scoreCmd.Flags().StringVar(&scoreWatchlist, "watchlist", "", "관심 통화쌍 YAML 파일 (기본: WATCHLIST_PATH)")
	scoreCmd.Flags().StringVar(&scoreCSVDir, "csv", "", "CSV 파일을 저장할 디렉터리")
	scoreCmd.Flags().BoolVar(&scoreStrict, "strict", false, "누락된 지표가 있으면 실패")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	// 1. Resolve pair selection before spending time on the scrape
	var wl *presentation.Watchlist
	path := scoreWatchlist
	if path == "" {
		path = cfg.WatchlistPath
	}
	if path != "" {
		if wl, err = presentation.LoadWatchlist(path); err != nil {
			return err
		}
	}

	var only contracts.Pair
	if scorePair != "" {
		p, ok := contracts.ParsePair(scorePair)
		if !ok {
			return fmt.Errorf("%w: %q", contracts.ErrUnknownPair, scorePair)
		}
		only = p
	}

	// 2. One refresh cycle
	svc, cleanup, err := newService(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	out := cmd.OutOrStdout()
	renderSnapshot(out, snap, wl, only)

	// 3. CSV export
	if scoreCSVDir != "" {
		if err := exportCSV(scoreCSVDir, snap); err != nil {
			return err
		}
		PrintSuccess(out, fmt.Sprintf("CSV written to %s", scoreCSVDir))
	}

	if scoreStrict {
		if err := snap.Err(); err != nil {
			return fmt.Errorf("incomplete snapshot: %w", err)
		}
	}

	return nil
}

// renderSnapshot prints the three tables; wl and only narrow the pair table
func renderSnapshot(w io.Writer, snap *pipeline.Snapshot, wl *presentation.Watchlist, only contracts.Pair) {
	PrintSnapshotHeader(w, "MacroScore", snap)

	for _, f := range snap.FailedCountries {
		PrintWarning(w, fmt.Sprintf("%s: %v", f.Country, f.Err))
	}

	fmt.Fprintln(w, "\nEconomic Data")
	PrintEconomicData(w, snap.Records)

	fmt.Fprintln(w, "\nCurrency Scores")
	PrintCurrencyScores(w, snap.Currencies)

	fmt.Fprintln(w, "\nFinal Scoring")
	rows := snap.Pairs.Rows()
	failures := snap.Pairs.Failures()
	if wl != nil {
		rows = wl.Filter(rows)
		failures = filterFailures(failures, wl.Contains)
	}
	if only != "" {
		keep := func(p contracts.Pair) bool { return p == only }
		rows = filterRows(rows, keep)
		failures = filterFailures(failures, keep)
	}
	PrintPairScores(w, rows, snap.Currencies)
	PrintPairFailures(w, failures)
}

func filterRows(rows []contracts.PairScore, keep func(contracts.Pair) bool) []contracts.PairScore {
	var out []contracts.PairScore
	for _, r := range rows {
		if keep(r.Pair) {
			out = append(out, r)
		}
	}
	return out
}

func filterFailures(failures []contracts.PairFailure, keep func(contracts.Pair) bool) []contracts.PairFailure {
	var out []contracts.PairFailure
	for _, f := range failures {
		if keep(f.Pair) {
			out = append(out, f)
		}
	}
	return out
}

// exportCSV writes records.csv, currencies.csv and pairs.csv into dir
func exportCSV(dir string, snap *pipeline.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	tables := presentation.Tables{
		Records:    snap.Records,
		Currencies: snap.Currencies,
		Pairs:      snap.Pairs,
	}

	var errs []error
	for _, name := range []string{presentation.TableRecords, presentation.TableCurrencies, presentation.TablePairs} {
		f, err := os.Create(filepath.Join(dir, name+".csv"))
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s.csv: %w", name, err))
			continue
		}
		if err := presentation.WriteCSV(f, name, tables); err != nil {
			errs = append(errs, fmt.Errorf("write %s.csv: %w", name, err))
		}
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s.csv: %w", name, err))
		}
	}

	return errors.Join(errs...)
}
