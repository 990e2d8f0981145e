package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/cli"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
	"github.com/vasiliy-maslov/laundry-service/internal/receipt"
	"github.com/vasiliy-maslov/laundry-service/internal/store"
	"github.com/vasiliy-maslov/laundry-service/pkg/config"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "laundry").Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	st, err := store.NewFileStore(cfg.Data.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data store")
	}
	receipts, err := receipt.NewFileWriter(cfg.Data.ReceiptDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open receipt dir")
	}

	cat := catalog.New(st)
	engine := order.NewEngine(cfg.Billing.LateFeePerDay)
	orders := order.NewService(st, engine, receipts)

	app := cli.NewApp(st, cat, orders, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil && !errors.Is(err, io.EOF) {
		log.Fatal().Err(err).Msg("Console session failed")
	}
}
