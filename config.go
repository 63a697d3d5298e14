package densemap

import (
	"os"
	"strconv"
)

type config[K comparable, V any] struct {
	allocator  Allocator
	loadFactor float64
	growFactor float64
	hashFunc   HashFunc[K]
	equalFunc  EqualFunc[K]
}

type Option[K comparable, V any] func(cfg *config[K, V])

// resolveConfig starts from the defaults, applies the DENSEMAP_LOADFACTOR
// and DENSEMAP_GROWFACTOR environment overrides and then the options.
func resolveConfig[K comparable, V any](opts ...Option[K, V]) *config[K, V] {
	cfg := &config[K, V]{
		loadFactor: defaultLoadFactor,
		growFactor: defaultGrowFactor,
	}

	if env := os.Getenv("DENSEMAP_LOADFACTOR"); env != "" {
		if val, err := strconv.ParseFloat(env, 64); err == nil {
			cfg.loadFactor = val
		}
	}

	if env := os.Getenv("DENSEMAP_GROWFACTOR"); env != "" {
		if val, err := strconv.ParseFloat(env, 64); err == nil {
			cfg.growFactor = val
		}
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.allocator == nil {
		cfg.allocator = SystemAllocator
	}

	if cfg.hashFunc == nil {
		cfg.hashFunc = defaultHashFunc[K]()
	}

	if cfg.equalFunc == nil {
		cfg.equalFunc = defaultEqualFunc[K]()
	}

	return cfg
}

func (cfg *config[K, V]) validate() error {
	if !validLoadFactor(cfg.loadFactor) {
		return ErrInvalidLoadFactor
	}

	if !validGrowFactor(cfg.growFactor) {
		return ErrInvalidGrowFactor
	}

	return nil
}

// Override the allocator the probe index is taken from. Defaults to
// SystemAllocator.
func WithAllocator[K comparable, V any](a Allocator) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.allocator = a
	}
}

// WithLoadFactor sets how full, as a fraction in [0.01, 1.0], the index may
// get relative to capacity. Defaults to env DENSEMAP_LOADFACTOR or 0.75.
func WithLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.loadFactor = f
	}
}

// WithGrowFactor sets by how much, as a fraction in [0.10, 2.50], capacity
// increases on growth. Defaults to env DENSEMAP_GROWFACTOR or 1.5.
func WithGrowFactor[K comparable, V any](f float64) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.growFactor = f
	}
}

// Override default hash function.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.hashFunc = f
	}
}

func WithEqualFunc[K comparable, V any](f EqualFunc[K]) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.equalFunc = f
	}
}
