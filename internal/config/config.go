// Package config loads the warehouse server settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/jacentio/warehouse/catalog"
	"github.com/jacentio/warehouse/store"
)

// Config holds the server settings.
type Config struct {
	// ListenAddr is the HTTP listen address.
	// Default: ":8000"
	ListenAddr string

	// AWSRegion and AWSProfile select the AWS credentials. Empty values
	// defer to the SDK's default chain.
	AWSRegion  string
	AWSProfile string

	// DynamoDBEndpoint overrides the DynamoDB endpoint, e.g. DynamoDB Local.
	DynamoDBEndpoint string

	// Table names.
	// Default: "categories", "parts", "warehouse_unique_constraints"
	CategoriesTable string
	PartsTable      string
	UniqueTable     string

	// ScanSegments is passed to the store.
	// Default: 1, Max: 64
	ScanSegments int

	// CreateTables creates missing tables at startup.
	// Default: true
	CreateTables bool

	// LogLevel is the minimum level logged.
	// Default: info
	LogLevel slog.Level

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// Default returns the default settings.
func Default() Config {
	tables := catalog.DefaultTables()
	return Config{
		ListenAddr:      ":8000",
		CategoriesTable: tables.Categories,
		PartsTable:      tables.Parts,
		UniqueTable:     tables.Unique,
		ScanSegments:    1,
		CreateTables:    true,
		LogLevel:        slog.LevelInfo,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads envFile, if it exists, and then the process environment.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c := Default()
	var errs []error

	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.AWSRegion, "AWS_REGION")
	setString(&c.AWSProfile, "AWS_PROFILE")
	setString(&c.DynamoDBEndpoint, "DYNAMODB_ENDPOINT")
	setString(&c.CategoriesTable, "CATEGORIES_TABLE")
	setString(&c.PartsTable, "PARTS_TABLE")
	setString(&c.UniqueTable, "UNIQUE_TABLE")

	if v, ok := lookup("SCAN_SEGMENTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SCAN_SEGMENTS: %w", err))
		}
		c.ScanSegments = n
	}
	if v, ok := lookup("CREATE_TABLES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CREATE_TABLES: %w", err))
		}
		c.CreateTables = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		}
		c.ShutdownTimeout = d
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	c.validate()
	return c, nil
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	def := Default()
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.CategoriesTable == "" {
		c.CategoriesTable = def.CategoriesTable
	}
	if c.PartsTable == "" {
		c.PartsTable = def.PartsTable
	}
	if c.UniqueTable == "" {
		c.UniqueTable = def.UniqueTable
	}
	if c.ScanSegments < 1 {
		c.ScanSegments = 1
	}
	if c.ScanSegments > 64 {
		c.ScanSegments = 64
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
}

// Tables returns the catalog table names.
func (c Config) Tables() catalog.Tables {
	return catalog.Tables{
		Categories: c.CategoriesTable,
		Parts:      c.PartsTable,
		Unique:     c.UniqueTable,
	}
}

// Store returns the store settings.
func (c Config) Store() store.Config {
	return store.Config{
		UniqueTable:  c.UniqueTable,
		ScanSegments: c.ScanSegments,
	}
}

// AWS loads the AWS SDK configuration for the configured region and profile.
func (c Config) AWS(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(c.AWSRegion))
	}
	if c.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.AWSProfile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// DynamoDB returns a DynamoDB client honoring DynamoDBEndpoint.
func (c Config) DynamoDB(awsCfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, c.dynamoDBOptions)
}

func (c Config) dynamoDBOptions(o *dynamodb.Options) {
	if c.DynamoDBEndpoint != "" {
		o.BaseEndpoint = aws.String(c.DynamoDBEndpoint)
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}
