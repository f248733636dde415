package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database — empty means demo mode: the server runs on the in-memory
	// backend with the seeded salon and carta instead of Postgres.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis — empty disables the carta cache and the async job queue.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`

	// SMTP — used by the cierre worker to mail the daily-close report
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Business
	NombreLocal string `mapstructure:"NOMBRE_LOCAL"`
	// PDFStoragePath is where comanda and cierre PDFs are written
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// DemoMode reports whether the server should run without Postgres.
func (c *Config) DemoMode() bool { return c.DatabaseURL == "" }

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("JWT_SECRET", "cambiar-en-produccion")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("NOMBRE_LOCAL", "Sistema Bar")
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/sistemabar/pdfs")
	// No default DATABASE_URL: absent means demo mode on purpose, mirroring
	// the front end's mock-dataset fallback when the store is not configured.

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
