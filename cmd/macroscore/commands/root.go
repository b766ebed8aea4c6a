package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "macroscore",
	Short: "MacroScore - 매크로 지표 기반 통화쌍 방향성 점수",
	Long: `MacroScore CLI

국가별 경제지표 페이지를 수집해 통화별 점수와
통화쌍 최종 점수를 계산합니다.

Usage:
  go run ./cmd/macroscore [command]

Examples:
  go run ./cmd/macroscore score
  go run ./cmd/macroscore pair eurusd
  go run ./cmd/macroscore api --port 8080
  go run ./cmd/macroscore scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
