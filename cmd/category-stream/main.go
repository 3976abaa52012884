// Command category-stream is an AWS Lambda function consuming the
// categories table stream. It repairs part and subcategory references left
// stale by an interrupted rename and reports references to removed
// categories.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/warehouse/catalog"
	"github.com/jacentio/warehouse/internal/config"
	"github.com/jacentio/warehouse/store"
	"github.com/jacentio/warehouse/stream"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	awsCfg, err := cfg.AWS(context.Background())
	if err != nil {
		logger.Error("load aws config", "error", err)
		os.Exit(1)
	}

	tables := cfg.Tables()
	s := store.NewWithRegistry(cfg.DynamoDB(awsCfg), cfg.Store(), catalog.NewRegistry(tables))
	handler := stream.NewHandler(s, catalog.EntityTypeCategory, tables.Categories, logger)

	lambda.Start(handler.HandleEvents)
}
