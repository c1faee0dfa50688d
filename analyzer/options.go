package analyzer

import (
	"fmt"

	"github.com/arloliu/sparsa/codec"
	"github.com/arloliu/sparsa/errs"
	"github.com/arloliu/sparsa/format"
	"github.com/arloliu/sparsa/internal/options"
)

// Config holds the analyzer settings.
type Config struct {
	registry    *codec.Registry
	algorithms  []string
	compression format.CompressionType
	measureWire bool
	parallel    bool
	cacheSize   int
}

// defaultConfig runs every codec of the default registry sequentially without
// measuring serialized sizes or caching reports.
func defaultConfig() *Config {
	return &Config{
		registry:    codec.DefaultRegistry(),
		compression: format.CompressionNone,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithRegistry sets the registry codecs are created from.
func WithRegistry(r *codec.Registry) Option {
	return options.New(func(cfg *Config) error {
		if r == nil {
			return fmt.Errorf("%w: nil registry", errs.ErrParamInvalid)
		}
		cfg.registry = r

		return nil
	})
}

// WithAlgorithms restricts a run to the named codecs. By default every
// registered codec runs.
func WithAlgorithms(names ...string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.algorithms = append([]string(nil), names...)
	})
}

// WithCompression also serializes every successful codec with the wire package
// using comp as payload compression, and reports the serialized size.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, comp)
		}
		cfg.compression = comp
		cfg.measureWire = true

		return nil
	})
}

// WithParallel runs the codecs concurrently, one goroutine per codec.
func WithParallel(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.parallel = enabled
	})
}

// WithResultCache keeps the reports of the last size distinct inputs, keyed by
// the input fingerprint. Repeated runs on an identical array return the cached
// report.
func WithResultCache(size int) Option {
	return options.New(func(cfg *Config) error {
		if size <= 0 {
			return fmt.Errorf("%w: cache size %d", errs.ErrParamInvalid, size)
		}
		cfg.cacheSize = size

		return nil
	})
}
