package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	PaymentProvider     string `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`

	PaymentRateLimit int64         `envconfig:"PAYMENT_RATE_LIMIT" default:"10"`
	BookingRateLimit int64         `envconfig:"BOOKING_RATE_LIMIT" default:"20"`
	SessionRateLimit int64         `envconfig:"SESSION_RATE_LIMIT" default:"10"`
	RateLimitWindow  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1h"`
}

func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
