package main

// @title Archive Alert API
// @version 1.0.0
// @description Read-only status API for the UP42 archive alert scheduler.
// @BasePath /

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/archive-alert/docs"
	"github.com/archive-alert/internal/config"
	httpDelivery "github.com/archive-alert/internal/delivery/http"
	"github.com/archive-alert/internal/delivery/http/handler"
	"github.com/archive-alert/internal/pkg/logger"
	"github.com/archive-alert/internal/usecase"
	"github.com/archive-alert/internal/worker"
	"github.com/archive-alert/internal/worker/alert"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "archive-alert",
		Short:         "Watch the UP42 catalog for new archive scenes over an AOI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "path to the .env configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Register the AOI and run the alert cycle on a schedule",
			RunE:  withApp(runScheduler),
		},
		&cobra.Command{
			Use:   "once",
			Short: "Register the AOI and run a single alert cycle now",
			RunE:  withApp(runOnce),
		},
		&cobra.Command{
			Use:   "register",
			Short: "Add the AOI to the counter store with a count of 0",
			RunE: withApp(func(ctx context.Context, a *app) error {
				return a.register(ctx)
			}),
		},
		&cobra.Command{
			Use:   "counters",
			Short: "Print the stored scene counts",
			RunE:  withApp(printCounters),
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

// withApp loads configuration, builds the logger and components, and cancels
// ctx on SIGINT/SIGTERM.
func withApp(run func(ctx context.Context, a *app) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync()

		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, a)
	}
}

func runOnce(ctx context.Context, a *app) error {
	if err := a.register(ctx); err != nil {
		return err
	}

	result, err := a.alertUC.RunCycle(ctx)
	if err != nil {
		return err
	}

	a.log.Info("Cycle complete",
		zap.String("report", result.ReportPath),
		zap.Int("scenes", result.SceneCount),
		zap.Bool("notified", result.Notified()))
	return nil
}

func runScheduler(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	if err := a.register(ctx); err != nil {
		return err
	}

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(alert.NewAlertWorker(a.alertUC, &cfg.Scheduler, log))

	var server *httpDelivery.Server
	if cfg.Status.Enabled {
		statusUC := usecase.NewStatusUseCase(
			a.counters,
			a.alertUC,
			cfg.Store.Backend,
			cfg.AOI.FileName,
			cfg.Scheduler.Interval,
			log,
		)
		server = httpDelivery.NewServer(cfg, log, handler.NewStatusHandler(statusUC, log))

		go func() {
			if err := server.Start(); err != nil {
				log.Error("Status API stopped", zap.Error(err))
			}
		}()
	}

	if err := workerManager.Start(ctx); err != nil {
		return err
	}

	log.Info("Archive alert started",
		zap.String("aoi", cfg.AOIPath()),
		zap.Duration("interval", cfg.Scheduler.Interval))

	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shut down status API", zap.Error(err))
		}
	}

	if err := workerManager.Err(); err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info("Shutdown complete")
	}
	return nil
}

func printCounters(ctx context.Context, a *app) error {
	counts, err := a.counters.All(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(counts)
}
