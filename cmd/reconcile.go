package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/workpool"
)

var (
	reconcileCards []string
	reportMu       sync.Mutex
)

var reconcileCMD = &cobra.Command{
	Use:   "reconcile",
	Short: "reconcile the active search criteria of the given cards now",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(reconcileCards) == 0 {
			return errors.New("at least one --card is required")
		}
		ctx := cmd.Context()

		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		active, err := e.criteria.ListActive(ctx, reconcileCards)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			slog.Info("No active search criteria", slog.String("type", "recon"), slog.Any("cards", reconcileCards))
			return nil
		}

		out := cmd.OutOrStdout()
		tasks := make([]workpool.Task, 0, len(active))
		for _, c := range active {
			tasks = append(tasks, func(ctx context.Context) error {
				res, err := e.reconciler.Reconcile(ctx, c)
				if err != nil {
					return fmt.Errorf("criteria %s: %w", c.ID, err)
				}
				return report(ctx, e, out, c, res.Processed, res.Updated)
			})
		}
		return e.pool.Run(ctx, tasks)
	},
}

func init() {
	reconcileCMD.Flags().StringSliceVar(&reconcileCards, "card", nil, "card id to reconcile (repeatable)")
	rootCmd.AddCommand(reconcileCMD)
}

func report(ctx context.Context, e *engine, out io.Writer, c *search.Criteria, processed, updated int) error {
	sold, err := e.priceRecords.CountForCriteria(ctx, c.ID)
	if err != nil {
		return err
	}
	listed, err := e.openListings.CountForCriteria(ctx, c.ID)
	if err != nil {
		return err
	}
	reportMu.Lock()
	defer reportMu.Unlock()
	_, err = fmt.Fprintf(out, "%s\tcard=%s\tprocessed=%d\tupdated=%d\tmatched_sales=%d\tmatched_listings=%d\n",
		c.ID, c.CardID, processed, updated, sold, listed)
	return err
}
