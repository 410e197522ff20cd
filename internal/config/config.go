// Package config provides centralized configuration loaded from environment
// variables, shared by all pipeline commands.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// --------------------------------------------------------------------------
// Collection names — single source of truth for the seeder
// --------------------------------------------------------------------------

const (
	CropsCollection  = "crops"
	StatesCollection = "states"
	MandisCollection = "mandis"
	PricesCollection = "prices"
)

// --------------------------------------------------------------------------
// Sentinel identifiers in the raw taxonomy dump
//
// The upstream export uses reserved ids to mean "unspecified"; records
// carrying them are filtered out by the geography index and converters.
// --------------------------------------------------------------------------

const (
	SentinelStateID    = 100000
	SentinelDistrictID = 100001
	SentinelMarketID   = 100002
)

// Config struct — populated from environment variables.
type Config struct {
	// Database
	MongoURI       string
	MongoDatabase  string
	MongoConnectTO time.Duration

	// Seeder
	SeedBatchSize int

	// Agmarknet fetch
	AgmarknetBaseURL string
	FetchPageSize    int
	FetchMaxPages    int
	FetchDelay       time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// MONGO_URI is only validated by the commands that talk to the database.
func Load() (*Config, error) {
	return &Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  envOr("MONGO_DATABASE", "mandidata"),
		MongoConnectTO: time.Duration(envInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,

		SeedBatchSize: envInt("SEED_BATCH_SIZE", 500),

		AgmarknetBaseURL: envOr("AGMARKNET_API_URL", "https://api.agmarknet.gov.in/v1/daily-price-arrival/report"),
		FetchPageSize:    envInt("AGMARKNET_PAGE_SIZE", 500),
		FetchMaxPages:    envInt("AGMARKNET_MAX_PAGES", 100),
		FetchDelay:       time.Duration(envInt("AGMARKNET_DELAY_MS", 500)) * time.Millisecond,
	}, nil
}

// RequireMongo returns an error if no MongoDB connection string is set.
func (c *Config) RequireMongo() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI not found in environment; create a .env file with MONGO_URI")
	}
	return nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
