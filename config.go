package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const defaultDBHost = "toolmarket.nrwma.mongodb.net"

// Config holds everything read from the environment at start-up.
type Config struct {
	Env                string        `koanf:"env"`
	Port               string        `koanf:"port" validate:"required,numeric"`
	MongoURL           string        `koanf:"mongo_url"`
	DBUser             string        `koanf:"db_user"`
	DBPass             string        `koanf:"db_pass"`
	DBHost             string        `koanf:"db_host"`
	DBName             string        `koanf:"db_name" validate:"required"`
	AccessTokenSecret  string        `koanf:"access_token_secret" validate:"required"`
	TokenTTL           time.Duration `koanf:"token_ttl" validate:"gt=0"`
	StripeSecretKey    string        `koanf:"stripe_secret_key" validate:"required"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"gte=0"`
}

var envKeys = map[string]bool{
	"ENV": true, "PORT": true, "MONGO_URL": true,
	"DB_USER": true, "DB_PASS": true, "DB_HOST": true, "DB_NAME": true,
	"ACCESS_TOKEN_SECRET": true, "TOKEN_TTL": true, "STRIPE_SECRET_KEY": true,
	"CORS_ALLOWED_ORIGINS": true, "REQUEST_TIMEOUT": true,
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		if !envKeys[s] {
			return ""
		}
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{
		Env:                "development",
		Port:               "5000",
		DBHost:             defaultDBHost,
		DBName:             "toolmarket",
		TokenTTL:           30 * 24 * time.Hour,
		CORSAllowedOrigins: "*",
		RequestTimeout:     30 * time.Second,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MongoURI returns MONGO_URL when set, otherwise an Atlas URI built from
// the DB_* credentials, otherwise a local server.
func (c *Config) MongoURI() string {
	if c.MongoURL != "" {
		return c.MongoURL
	}
	if c.DBUser == "" {
		return "mongodb://localhost:27017"
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
