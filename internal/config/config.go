package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	BackendBaseURL string
	Currency       string

	CheckoutKeyID     string
	CheckoutScriptURL string
	CallbackAddr      string
	StoreDisplayName  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		BackendBaseURL: os.Getenv("BACKEND_BASE_URL"),
		Currency:       getEnv("CURRENCY", "INR"),

		CheckoutKeyID:     os.Getenv("CHECKOUT_KEY_ID"),
		CheckoutScriptURL: getEnv("CHECKOUT_SCRIPT_URL", "https://checkout.razorpay.com/v1/checkout.js"),
		CallbackAddr:      getEnv("CALLBACK_ADDR", "127.0.0.1:8972"),
		StoreDisplayName:  getEnv("STORE_DISPLAY_NAME", "My Retail Shop"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
	}

	if cfg.BackendBaseURL == "" {
		log.Fatal("BACKEND_BASE_URL not set in environment")
	}

	return cfg
}

// JournalEnabled reports whether the local sales journal is configured.
// The terminal runs without it when no database is reachable.
func (c *Config) JournalEnabled() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
