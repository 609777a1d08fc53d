package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shipping-admin/internal/admin"
	"shipping-admin/internal/admin/adapter/persistence"
	"shipping-admin/internal/admin/config"
	"shipping-admin/internal/admin/domain/repository"
	"shipping-admin/internal/auth"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Container wires the storage gateway, signal bus and modules with proper
// lifecycle management.
type Container struct {
	mu sync.RWMutex

	// Module instances
	AuthModule  *auth.AuthModule
	AdminModule *admin.AdminModule

	// Shared infrastructure
	Store  repository.Store
	Bus    *eventbus.EventBus
	Config *config.Config
	Logger logger.Logger

	// Backend clients, set only for the backend in use
	redisClient *redis.Client
	mongoClient *mongo.Client
}

// NewContainer creates an empty DI container.
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: log,
		Bus:    eventbus.NewEventBus(log),
	}
}

// InitializeStorage connects the configured cache backend and builds the
// storage gateway over it. The seed directory backs every backend the same
// way.
func (c *Container) InitializeStorage(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seeds := persistence.NewSeedSource(c.Config.SeedDir, c.Logger)

	switch c.Config.StorageBackend {
	case config.BackendFile:
		c.Store = persistence.NewFileStore(c.Config.CacheDir, seeds, c.Logger)

	case config.BackendRedis:
		client := config.NewRedisClient(&c.Config.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.redisClient = client
		c.Store = persistence.NewRedisStore(client, c.Config.Redis.KeyPrefix, seeds, c.Logger)

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Config.Mongo.URI))
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		c.mongoClient = client
		coll := client.Database(c.Config.Mongo.DatabaseName).Collection(c.Config.Mongo.CollectionName)
		c.Store = persistence.NewMongoStore(coll, seeds, c.Logger)

	default:
		return fmt.Errorf("unknown storage backend %q", c.Config.StorageBackend)
	}

	c.Logger.Infof("Storage gateway initialized with %s backend", c.Config.StorageBackend)
	return nil
}

// InitializeAuth initializes the authentication module.
func (c *Container) InitializeAuth() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	module, err := auth.NewAuthModule(c.Config, c.Bus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = module
	return nil
}

// InitializeAdmin initializes the data layer module. Storage must be
// initialized first.
func (c *Container) InitializeAdmin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Store == nil {
		return fmt.Errorf("storage must be initialized before the admin module")
	}

	c.AdminModule = admin.NewAdminModule(c.Store, c.Bus, c.Config, c.Logger)
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetAdminModule returns the admin module instance
func (c *Container) GetAdminModule() *admin.AdminModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AdminModule
}

// HealthCheck verifies the active backend connection. The file backend has
// nothing to ping.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.redisClient != nil {
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}
	if c.mongoClient != nil {
		if err := c.mongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("mongodb health check failed: %w", err)
		}
	}
	return nil
}

// Close releases backend connections.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
		c.redisClient = nil
	}
	if c.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect MongoDB: %w", err)
		}
		c.mongoClient = nil
	}
	return nil
}
