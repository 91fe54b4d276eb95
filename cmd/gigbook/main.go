package main

import (
	"context"
	"errors"
	"os"

	"gigbook/internal/amqp"
	"gigbook/internal/backend"
	"gigbook/internal/cli"
	"gigbook/internal/log"
	"gigbook/internal/services"
	"gigbook/internal/shell"
	"gigbook/internal/store"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	factory := backend.NewFactory(logger.Logger)
	repo, err := factory.CreateRepository(ctx, backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer repo.Close()

	venues := store.NewVenueStore()
	bands := store.NewBandStore()
	events := store.NewEventStore()
	if err := backend.LoadStores(ctx, repo, venues, bands, events); err != nil {
		logger.Error("Failed to load stores", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Stores loaded",
		"venues", venues.Len(), "bands", bands.Len(), "events", events.Len())

	// The booking ledger pipeline is optional: without a broker the shell
	// still works, bookings just stay local.
	var ledger services.Ledger
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Booking ledger disabled, AMQP unreachable", log.FieldError, err)
		} else {
			defer client.Close()
			ledger = client
			logger.Info("Booking ledger enabled",
				log.FieldExchange, cfg.AMQPExchange, log.FieldQueue, cfg.AMQPQueue)
		}
	}

	registry := services.NewRegistryService(venues, bands, repo)
	booking := services.NewBookingService(venues, bands, events, repo, ledger)

	sh := shell.New(os.Stdin, os.Stdout, registry, booking, logger)
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shell terminated", log.FieldError, err)
		os.Exit(1)
	}
}
