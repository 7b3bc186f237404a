package authsession

import (
	"fmt"
	"time"
)

// StorageDriver selects the durable backend Build constructs when no
// explicit backend is injected.
type StorageDriver string

const (
	// DriverMemory keeps the session in process memory only.
	DriverMemory StorageDriver = "memory"
	// DriverBolt persists the session into a local BoltDB file.
	DriverBolt StorageDriver = "bolt"
	// DriverRedis mirrors the session into a Redis instance.
	DriverRedis StorageDriver = "redis"
)

// Config carries everything Build needs. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Storage StorageConfig
	HTTP    HTTPConfig
}

// StorageConfig selects and parameterizes the durable backend.
type StorageConfig struct {
	Driver StorageDriver

	// Bolt driver.
	Path   string
	Bucket string

	// Redis driver.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// HTTPConfig shapes the clients returned by Manager.HTTPClient consumers.
type HTTPConfig struct {
	Timeout time.Duration
}

// DefaultConfig returns the memory-only baseline configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Driver: DriverMemory},
		HTTP:    HTTPConfig{Timeout: 30 * time.Second},
	}
}

func validateConfig(cfg Config) error {
	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverBolt:
		if cfg.Storage.Path == "" {
			return fmt.Errorf("%w: bolt driver requires a file path", ErrInvalidConfig)
		}
	case DriverRedis:
		if cfg.Storage.RedisAddr == "" {
			return fmt.Errorf("%w: redis driver requires an address", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.Storage.Driver)
	}
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: negative HTTP timeout", ErrInvalidConfig)
	}
	return nil
}
