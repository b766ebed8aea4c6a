package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradingfury/macroscore/internal/api"
	"github.com/tradingfury/macroscore/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- 시작 시 한 번 점수를 계산
- 점수 조회 엔드포인트 제공
- 스케줄러로 주기적 갱신

Endpoints:
  GET  /health                   - Health check
  GET  /api/records              - 정규화된 지표 레코드
  GET  /api/currencies           - 통화별 점수표
  GET  /api/pairs[?sort=score]   - 통화쌍 점수표
  GET  /api/pairs/{pair}         - 통화쌍 조회
  GET  /api/export/{table}.csv   - CSV 내보내기
  POST /api/refresh              - 즉시 갱신

Example:
  go run ./cmd/macroscore api
  go run ./cmd/macroscore api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MacroScore API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := newLogger(cfg, os.Stdout)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Pipeline service
	svc, cleanup, err := newService(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 4. Initial refresh; the server still starts if it fails
	if _, err := svc.Refresh(cmd.Context()); err != nil {
		log.WithError(err).Warn("Initial refresh failed")
	}

	// 5. Scheduler
	sched, err := initScheduler(svc, cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// 6. Router + server
	router := api.NewRouter(handlers.NewScoreHandler(svc, log), log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
