package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config is decoded from the process environment after an optional .env file
// has been loaded.
type Config struct {
	Port    string `env:"PORT,default=8080"`
	Storage string `env:"STORAGE,default=mongo"`

	MongoURI          string `env:"MONGODB_URI,default=mongodb://localhost:27017"`
	MongoDB           string `env:"MONGODB_DB,default=healthTrackingDB"`
	MongoTransactions bool   `env:"MONGO_TRANSACTIONS,default=true"`

	// Empty RedisAddr disables the user cache.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB,default=0"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION,default=24h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000;http://localhost:5173"`
	StreakTimezone string   `env:"STREAK_TIMEZONE,default=Local"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
	LogFile  string `env:"LOG_FILE"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT,default=5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST,default=10"`

	location *time.Location
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		return fmt.Errorf("unknown STORAGE %q (want %q or %q)", c.Storage, StorageMongo, StorageMemory)
	}
	if c.JWTExpiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	loc, err := time.LoadLocation(c.StreakTimezone)
	if err != nil {
		return fmt.Errorf("invalid STREAK_TIMEZONE %q: %w", c.StreakTimezone, err)
	}
	c.location = loc
	return nil
}

// Location is the calendar used to decide where one streak day ends and the
// next begins. It is resolved by Validate; before that it is nil.
func (c *Config) Location() *time.Location {
	return c.location
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
