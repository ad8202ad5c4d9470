package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory     = "memory"
	StorePersistent = "persistent"

	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"ENV" default:"development"`
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`
	SeedDemo    bool   `envconfig:"SEED_DEMO" default:"false"`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
	} `envconfig:""`

	Store struct {
		Driver             string `envconfig:"STORE_DRIVER" default:"memory"`
		PostgresURL        string `envconfig:"POSTGRES_URL"`
		MongoURI           string `envconfig:"MONGO_URI"`
		MongoDatabase      string `envconfig:"MONGO_DATABASE" default:"socialmedia"`
		MongoSnapshotReads bool   `envconfig:"MONGO_SNAPSHOT_READS" default:"false"`
		RedisAddr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		RedisPassword      string `envconfig:"REDIS_PASSWORD"`
		RedisDB            int    `envconfig:"REDIS_DB" default:"0"`
	} `envconfig:""`

	Auth struct {
		Provider                string `envconfig:"AUTH_PROVIDER" default:"jwt"`
		JWTSecret               string `envconfig:"JWT_SECRET"`
		FirebaseCredentialsPath string `envconfig:"FIREBASE_CREDENTIALS_PATH"`
	} `envconfig:""`

	Server struct {
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	} `envconfig:""`
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	// a missing .env is fine; variables may come from the environment
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot start the service
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	c.Auth.Provider = strings.ToLower(c.Auth.Provider)

	switch c.Store.Driver {
	case StoreMemory:
	case StorePersistent:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when STORE_DRIVER=%s", StorePersistent)
		}
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", StorePersistent)
		}
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER=%s", StorePersistent)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Auth.Provider {
	case AuthJWT:
		if c.Auth.JWTSecret == "" {
			if c.IsProduction() {
				return fmt.Errorf("JWT_SECRET is required in production")
			}
			c.Auth.JWTSecret = "supersecretjwtkey"
		}
	case AuthFirebase:
		if c.Auth.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER=%s", AuthFirebase)
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
