package config

import (
	"fmt"
	"os"
	"strconv"

	"content-provider/models"
	"content-provider/validator"

	"github.com/joho/godotenv"
)

// DefaultAuthority is the authority the provider answers for unless configured
const DefaultAuthority = "com.example.android.contentprovidersample.provider"

type Config struct {
	Env       string `json:"env" validate:"required,oneof=development production test"`
	DBPath    string `json:"dbPath" validate:"required"`
	LogLevel  string `json:"logLevel" validate:"required,oneof=debug info warn error"`
	Authority string `json:"authority" validate:"required,authority"`
	Table     string `json:"table" validate:"required"`
	SeedData  bool   `json:"seedData"`
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	seed, err := strconv.ParseBool(GetEnv("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DATA: %w", err)
	}

	cfg := &Config{
		Env:       GetEnv("ENV", "development"),
		DBPath:    GetEnv("DB_PATH", "./data/cheeses.db"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		Authority: GetEnv("PROVIDER_AUTHORITY", DefaultAuthority),
		Table:     models.CheeseTable,
		SeedData:  seed,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
