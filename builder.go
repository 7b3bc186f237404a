package authsession

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crmkit/authsession/storage"
)

// Builder assembles a Manager and its collaborators. Construction is
// allocation-only until Build; Build may open the configured backend.
type Builder struct {
	config   Config
	backend  storage.Backend
	logger   *zap.Logger
	notifier Notifier

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBackend injects an already-open storage backend, overriding the
// configured driver.
func (b *Builder) WithBackend(backend storage.Backend) *Builder {
	b.backend = backend
	return b
}

// WithLogger sets the structured logger. Unset means no logging.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithNotifier sets the callback that surfaces "you have been logged out"
// to the user.
func (b *Builder) WithNotifier(notifier Notifier) *Builder {
	b.notifier = notifier
	return b
}

// Build validates the configuration, opens the backend if none was
// injected, and returns the assembled Manager. A Builder builds once.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true

	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	backend := b.backend
	if backend == nil {
		var err error
		backend, err = openBackend(b.config.Storage)
		if err != nil {
			return nil, err
		}
	}

	store := NewStore(backend, b.logger)
	manager := NewManager(store, b.logger, b.notifier)
	manager.httpTimeout = b.config.HTTP.Timeout
	return manager, nil
}

func openBackend(cfg StorageConfig) (storage.Backend, error) {
	switch cfg.Driver {
	case DriverBolt:
		return storage.OpenBolt(cfg.Path, cfg.Bucket)
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return storage.NewRedis(client, cfg.RedisPrefix), nil
	default:
		return storage.NewMemory(), nil
	}
}
