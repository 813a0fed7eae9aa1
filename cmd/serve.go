package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/scheduler"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "run scheduled reconciliation until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("Starting pokeprice engine",
			slog.String("type", "sys"),
			slog.String("version", version),
			slog.String("commit", commit),
		)

		setupCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		e, err := newEngine(setupCtx, cfg)
		cancel()
		if err != nil {
			return err
		}
		defer e.Close()

		sched := scheduler.NewReconcileScheduler(e.criteria, e.reconciler, e.pool,
			cfg.Engine.ReconcileInterval.Duration, cfg.Engine.CriteriaPerTick)

		pm := scheduler.NewProcessManager(context.Background())
		pm.Start("reconcile", "reconciles the stalest search criteria", func(ctx context.Context) {
			if _, err := sched.RunOnce(ctx); err != nil {
				slog.Error("Initial reconciliation failed", slog.String("type", "recon"), slog.Any("error", err))
			}
			sched.Run(ctx)
		})

		slog.Info("Engine running",
			slog.String("type", "sys"),
			slog.Duration("interval", cfg.Engine.ReconcileInterval.Duration),
			slog.Int("workers", e.pool.Workers()),
		)

		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
		<-s

		slog.Info("Shutting down...", slog.String("type", "sys"))
		if err := pm.Shutdown(30 * time.Second); err != nil {
			slog.Warn("Background processes did not stop in time",
				slog.String("type", "sys"),
				slog.Any("processes", pm.List()),
				slog.Any("error", err),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCMD)
}
