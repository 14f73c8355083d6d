package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	postgresRepo "github.com/iho/trxrecords/internal/adapter/repository/postgres"
	"github.com/iho/trxrecords/internal/adapter/source"
	"github.com/iho/trxrecords/internal/infrastructure/config"
	"github.com/iho/trxrecords/internal/infrastructure/logger"
	"github.com/iho/trxrecords/internal/infrastructure/postgres"
	"github.com/iho/trxrecords/internal/usecase"
)

// importCmd talks to the database directly and shares the server's import path.
func importCmd() *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a pipe-delimited transaction file",
		Long: `Import a pipe-delimited transaction file into DATABASE_URL. Without --file the bundled data set is used.

Content that was already imported is skipped by default (IMPORT_DEDUPLICATE=true).
Set IMPORT_DEDUPLICATE=false to insert the same file again.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})

			if migrate {
				if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
					return err
				}
			}

			pool, err := postgres.NewPoolWithConfig(cmd.Context(), postgres.PoolConfig{
				DatabaseURL:    cfg.DatabaseURL,
				MaxConns:       2,
				ConnectTimeout: cfg.DatabaseTimeout,
			})
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			defer pool.Close()

			src, ok := source.Resolve(file, log)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
				return nil
			}

			recordRepo := postgresRepo.NewRecordRepository(pool)
			uc := usecase.NewImportUseCase(
				postgresRepo.NewTxManager(pool),
				recordRepo,
				postgresRepo.NewImportRunRepository(),
				postgresRepo.NewRetrier(log),
				postgresRepo.NewULIDGenerator(),
				usecase.ImportConfig{Deduplicate: cfg.ImportDeduplicate, Logger: log},
			)

			result, err := uc.Import(cmd.Context(), src)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path of the file to import")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply database migrations first")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	run := func(down bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})
			if down {
				return postgres.RunMigrationsDown(cfg.DatabaseURL, log)
			}
			return postgres.RunMigrations(cfg.DatabaseURL, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all migrations", Args: cobra.NoArgs, RunE: run(false)},
		&cobra.Command{Use: "down", Short: "Revert the most recent migration", Args: cobra.NoArgs, RunE: run(true)},
	)

	return cmd
}
