package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("FREE_SHIPPING_THRESHOLD")
	os.Unsetenv("STANDARD_SHIPPING_RATE")
	os.Unsetenv("ORDERS_TABLE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(25000), cfg.FreeShippingThreshold)
	assert.Equal(t, int64(2990), cfg.StandardShippingRate)
	assert.Equal(t, "storefront-orders", cfg.OrdersTable)
	assert.Equal(t, "48h0m0s", cfg.IdempotencyTTL.String())
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("FREE_SHIPPING_THRESHOLD", "30000")
	os.Setenv("STANDARD_SHIPPING_RATE", "3500")
	defer func() {
		os.Unsetenv("FREE_SHIPPING_THRESHOLD")
		os.Unsetenv("STANDARD_SHIPPING_RATE")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(30000), cfg.FreeShippingThreshold)
	assert.Equal(t, int64(3500), cfg.StandardShippingRate)
}
