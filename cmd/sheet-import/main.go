// cmd/sheet-import/main.go — one-shot migration of the legacy
// spreadsheet export into Postgres.
// Usage: go run ./cmd/sheet-import -file export.xlsx
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thatman123-source/cash-reconciliation/internal/config"
	"github.com/thatman123-source/cash-reconciliation/internal/infra"
	"github.com/thatman123-source/cash-reconciliation/internal/repository"
	"github.com/thatman123-source/cash-reconciliation/internal/sheet"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	file := flag.String("file", "", "path to the legacy .xlsx export")
	flag.Parse()
	if *file == "" {
		log.Fatal().Msg("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	entries, withdrawals, err := sheet.LoadWorkbook(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to parse workbook")
	}

	ctx := context.Background()
	entryRepo := repository.NewEntryRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	for i := range entries {
		if err := entryRepo.Create(ctx, &entries[i]); err != nil {
			log.Fatal().Err(err).Int("row", i+2).Msg("failed to insert entry")
		}
	}
	for i := range withdrawals {
		if err := withdrawalRepo.Create(ctx, nil, &withdrawals[i]); err != nil {
			log.Fatal().Err(err).Int("row", i+2).Msg("failed to insert withdrawal")
		}
	}

	log.Info().
		Int("entries", len(entries)).
		Int("withdrawals", len(withdrawals)).
		Msg("legacy sheet imported")
}
