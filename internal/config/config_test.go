package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("APP_ENV", "test")
		t.Setenv("BACKEND_BASE_URL", "http://localhost:8080/api/v1.0")
		t.Setenv("CURRENCY", "INR")
		t.Setenv("CHECKOUT_KEY_ID", "rzp_test_key")
		t.Setenv("CALLBACK_ADDR", "127.0.0.1:9000")
		t.Setenv("STORE_DISPLAY_NAME", "Corner Store")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "http://localhost:8080/api/v1.0", cfg.BackendBaseURL)
		assert.Equal(t, "INR", cfg.Currency)
		assert.Equal(t, "rzp_test_key", cfg.CheckoutKeyID)
		assert.Equal(t, "127.0.0.1:9000", cfg.CallbackAddr)
		assert.Equal(t, "Corner Store", cfg.StoreDisplayName)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.True(t, cfg.JournalEnabled())
	})

	t.Run("Defaults apply when unset", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "http://localhost:8080/api/v1.0")
		t.Setenv("CURRENCY", "")
		t.Setenv("CHECKOUT_SCRIPT_URL", "")
		t.Setenv("CALLBACK_ADDR", "")
		t.Setenv("STORE_DISPLAY_NAME", "")
		t.Setenv("DB_HOST", "")

		cfg := LoadConfig()

		assert.Equal(t, "INR", cfg.Currency)
		assert.Equal(t, "https://checkout.razorpay.com/v1/checkout.js", cfg.CheckoutScriptURL)
		assert.Equal(t, "127.0.0.1:8972", cfg.CallbackAddr)
		assert.Equal(t, "My Retail Shop", cfg.StoreDisplayName)
		assert.False(t, cfg.JournalEnabled())
	})
}
