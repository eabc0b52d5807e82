package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every environment-level setting the server needs.
type Config struct {
	MongoURI      string `env:"MONGO_URI" env-required:"true"`
	MongoDatabase string `env:"MONGO_DATABASE" env-default:"loanlink"`
	APIPort       string `env:"API_PORT" env-default:"8080"`
	JWTSecret     string `env:"JWT_SECRET"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	// Processing fee is a single fixed price; the checkout flow never negotiates.
	ProcessingFeeCents    int64  `env:"PROCESSING_FEE_CENTS" env-default:"2500"`
	ProcessingFeeCurrency string `env:"PROCESSING_FEE_CURRENCY" env-default:"usd"`

	// FrontendURL is used for CORS and to build the post-payment redirect targets.
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return &cfg, nil
}
