package main

import (
	"os"

	"github.com/tradingfury/macroscore/cmd/macroscore/commands"
)

// main is the entry point for the MacroScore CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/macroscore [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
