package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"gigbook/internal/amqp"
	"gigbook/internal/cli"
	"gigbook/internal/log"
	"gigbook/internal/sheets"
	gsheet "gigbook/internal/sheets/google"
	"gigbook/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting gigbook-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// The spreadsheet ledger is optional: without credentials the worker
	// still drains the queue in dry-run mode.
	var writer sheets.LedgerWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets ledger disabled, no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.NewLedgerWorker(writer)

	logger.Info("Consuming booked events",
		log.FieldExchange, cfg.AMQPExchange, log.FieldQueue, cfg.AMQPQueue)

	err = amqpClient.ConsumeEventBooked(ctx, func(msg *amqp.EventBookedMessage) error {
		return w.HandleBookedMessage(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
