package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/internal/scheduler"
	"github.com/tradingfury/macroscore/internal/scheduler/jobs"
	"github.com/tradingfury/macroscore/pkg/config"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/macroscore scheduler start
  go run ./cmd/macroscore scheduler list
  go run ./cmd/macroscore scheduler run scoring_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- scoring_refresh: REFRESH_CRON (기본 매시 정각, 전체 수집 + 점수 계산)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MacroScore Scheduler ===")

	sched, cleanup, err := setupScheduler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		next, _ := sched.NextRun(jobName)
		fmt.Printf("  - %s (next: %s)\n", jobName, next.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := setupScheduler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	stats := sched.GetJobStats()

	fmt.Fprintln(out, "Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Fprintf(out, "  - %s [%s]\n", jobName, stats[jobName].Schedule)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Running job: %s\n", jobName)

	sched, cleanup, err := setupScheduler(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := sched.RunJobNow(cmd.Context(), jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		PrintError(out, fmt.Sprintf("Job %s failed after %.2fs: %s", jobName, result.Duration.Seconds(), result.Error))
		return fmt.Errorf("job %s failed", jobName)
	}

	PrintSuccess(out, fmt.Sprintf("Job %s completed in %.2fs", jobName, result.Duration.Seconds()))
	return nil
}

// setupScheduler builds the service stack and a scheduler over it
func setupScheduler(cmd *cobra.Command) (*scheduler.Scheduler, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	svc, cleanup, err := newService(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	sched, err := initScheduler(svc, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init scheduler: %w", err)
	}

	return sched, cleanup, nil
}

// initScheduler registers every job
func initScheduler(svc *pipeline.Service, cfg *config.Config, log *logger.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(log, scheduler.Options{
		MaxRetries: cfg.Scheduler.MaxRetries,
		RetryDelay: cfg.Scheduler.RetryDelay,
	})

	if err := sched.AddJob(jobs.NewScoringRefreshJob(svc, cfg.Scheduler.RefreshCron, log)); err != nil {
		return nil, err
	}

	return sched, nil
}
