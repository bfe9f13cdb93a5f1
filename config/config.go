package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"cmanagement/logger"
)

type Config struct {
	LogLevel logger.LogLevel `env:"LOG_LEVEL" envDefault:"1"`
	LogDir   string          `env:"LOG_DIR" envDefault:"./logs"`
	Database DatabaseConfig  `envPrefix:"DATABASE_"`
	MaxAPI   MaxConfig       `envPrefix:"MAX_"`
	Mock     MockConfig      `envPrefix:"MOCK_"`
	Upload   UploadConfig    `envPrefix:"UPLOAD_"`
}

type MaxConfig struct {
	Token string `env:"TOKEN"`
}

// DatabaseConfig selects the data source. An empty URI keeps the application
// on the built-in simulated sources.
type DatabaseConfig struct {
	URI string `env:"URI"`
}

// MockConfig tunes the simulated sources: DelayMS is the artificial fetch
// latency, GenerateDelayMS the report generation time.
type MockConfig struct {
	DelayMS         int `env:"DELAY_MS" envDefault:"1000"`
	GenerateDelayMS int `env:"GENERATE_DELAY_MS" envDefault:"3000"`
}

type UploadConfig struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://uploads.c-management.fr"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
