package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// pairCmd represents the pair command
var pairCmd = &cobra.Command{
	Use:   "pair [text]",
	Short: "한 통화쌍의 점수 조회",
	Long: `통화쌍 하나를 검색합니다. 앞뒤 공백과 대소문자는 무시합니다.

Example:
  go run ./cmd/macroscore pair EURUSD
  go run ./cmd/macroscore pair " gbpjpy "`,
	Args: cobra.ExactArgs(1),
	RunE: runPair,
}

func init() {
	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Unknown text never needs a scrape
	if _, ok := contracts.ParsePair(args[0]); !ok {
		PrintInfo(out, fmt.Sprintf("Pair %q not found", args[0]))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	svc, cleanup, err := newService(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	score, err := snap.Pairs.Find(args[0])
	switch {
	case errors.Is(err, contracts.ErrUnknownPair):
		PrintInfo(out, fmt.Sprintf("Pair %q not found", args[0]))
		return nil
	case err != nil:
		PrintError(out, err.Error())
		return err
	}

	PrintPairScores(out, []contracts.PairScore{score}, snap.Currencies)
	return nil
}
