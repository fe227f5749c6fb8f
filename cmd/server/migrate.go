package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhidiny/osen-whmcs-mpesa/internal/database"
)

var migrateSkipSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the gateway settings",
	Long: `Create or update the invoice, ledger, gateway log and gateway settings tables.

Unless --no-seed is given, the configured gateway module is registered as an
active gateway. Modules that already have settings are left untouched.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSkipSeed, "no-seed", false, "skip seeding the gateway settings")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema migrated")

	if migrateSkipSeed {
		return nil
	}
	if err := database.SeedGateway(context.Background(), db, &cfg.Gateway); err != nil {
		return fmt.Errorf("seed gateway: %w", err)
	}
	log.Info("gateway seeded", zap.String("module", cfg.Gateway.Module))
	return nil
}
