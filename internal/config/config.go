package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-driven settings for the storefront services.
// Amounts are whole CLP units.
type Config struct {
	Port                  string        `envconfig:"PORT" default:"8080"`
	RunLocal              bool          `envconfig:"RUN_LOCAL" default:"false"`
	OrdersTable           string        `envconfig:"ORDERS_TABLE" default:"storefront-orders"`
	IdempotencyTable      string        `envconfig:"IDEMPOTENCY_TABLE" default:"storefront-idempotency"`
	OrdersQueueURL        string        `envconfig:"ORDERS_QUEUE_URL"`
	MetricsNamespace      string        `envconfig:"METRICS_NAMESPACE" default:"Storefront/Checkout"`
	FreeShippingThreshold int64         `envconfig:"FREE_SHIPPING_THRESHOLD" default:"25000"`
	StandardShippingRate  int64         `envconfig:"STANDARD_SHIPPING_RATE" default:"2990"`
	IdempotencyTTL        time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"48h"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("process env config: %w", err)
	}
	return cfg, nil
}
