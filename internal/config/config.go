package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries everything the server reads from the environment. Load fails
// fast on the settings the process cannot run without; optional integrations
// (Redis, Stripe, Cloudinary) degrade to disabled when unset.
type Config struct {
	Port        string
	Environment string

	MongoURI      string
	MongoPassword string
	MongoDBName   string

	SupabaseURL string
	SupabaseKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StripeAPIKey        string
	StripeWebhookSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                os.Getenv("PORT"),
		Environment:         os.Getenv("ENVIRONMENT"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoPassword:       os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:         os.Getenv("MONGODB_DB_NAME"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseKey:         os.Getenv("SUPABASE_URL_ANON_KEY"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = n
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
