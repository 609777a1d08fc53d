package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Storage backend selectors for the durable cache.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config holds all configuration for the admin backend.
type Config struct {
	// Server
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"3000"`

	// Storage gateway
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	// SeedDir holds the read-only bundled documents consulted when the
	// durable cache has no entry for a collection.
	SeedDir string `env:"SEED_DIR" envDefault:"data"`
	// CacheDir is the file backend's durable cache location.
	CacheDir string `env:"CACHE_DIR" envDefault:".cache"`

	// Change log
	ChangeLogMax int `env:"CHANGE_LOG_MAX" envDefault:"20"`

	// Session tokens
	JWTSecretKey   string        `env:"JWT_SECRET_KEY,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"shipping-admin"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"12h"`
	CookieName     string        `env:"COOKIE_NAME" envDefault:"admin_token"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Admin credentials. The bcrypt hash takes precedence; the plain
	// password is a development convenience only.
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" envDefault:""`
	AdminPassword     string `env:"ADMIN_PASSWORD" envDefault:""`

	Redis RedisConfig
	Mongo MongoConfig
}

// RedisConfig holds connection settings for the Redis cache backend.
type RedisConfig struct {
	Host            string `env:"REDIS_HOST" envDefault:"localhost"`
	Port            string `env:"REDIS_PORT" envDefault:"6379"`
	Password        string `env:"REDIS_PASSWORD" envDefault:""`
	Database        int    `env:"REDIS_DATABASE" envDefault:"0"`
	MaxRetries      int    `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	PoolSize        int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns    int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	EnableTLS       bool   `env:"REDIS_ENABLE_TLS" envDefault:"false"`
	ConnMaxIdleTime string `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m"`
	ConnMaxLifetime string `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h"`
	KeyPrefix       string `env:"REDIS_KEY_PREFIX" envDefault:"dashboard:"`
}

// GetAddr returns the host:port address for the Redis client.
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// MongoConfig holds connection settings for the MongoDB cache backend.
type MongoConfig struct {
	URI          string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"shipping_admin"`
	// CollectionName is the Mongo collection holding one document per
	// logical dashboard collection.
	CollectionName string `env:"MONGODB_COLLECTION" envDefault:"documents"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		return nil, fmt.Errorf("storage backend must be one of %q, %q, %q", BackendFile, BackendRedis, BackendMongo)
	}

	if cfg.ChangeLogMax <= 0 {
		return nil, errors.New("change log max must be positive")
	}
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 12 * time.Hour
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	return cfg, nil
}
