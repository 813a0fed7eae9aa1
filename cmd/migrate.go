package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/gateways/database"
	"github.com/pokeprice/engine/internal/migration"
)

var (
	migrateDataDir   string
	migrateBatchSize int
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "import BSON dumps of the old document store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}

		importer := migration.NewImporter(migration.NewRepositoryStore(db.BunDB()), migrateDataDir).
			WithBatchSize(migrateBatchSize)

		stats, err := importer.ImportAll(ctx)
		for _, s := range stats {
			fmt.Fprintf(cmd.OutOrStdout(), "%-26s read=%d skipped=%d inserted=%d\n", s.File, s.Read, s.Skipped, s.Inserted)
		}
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "error"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully!", slog.String("type", "sys"))
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&migrateDataDir, "data", "data", "directory holding the .bson dumps")
	migrateCMD.Flags().IntVar(&migrateBatchSize, "batch-size", 1000, "rows per insert")
	rootCmd.AddCommand(migrateCMD)
}
