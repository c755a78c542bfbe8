package codec

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/internal/options"
)

// DefaultMaxDepth is the default nesting limit for lists and compounds.
// The root compound counts as depth 1. It matches the limit enforced by the
// Java Edition reader.
const DefaultMaxDepth = 512

// Config holds the settings shared by Decoder and Encoder.
type Config struct {
	engine   endian.EndianEngine
	maxDepth int
	logger   zerolog.Logger
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		engine:   endian.GetBigEndianEngine(),
		maxDepth: DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Engine returns the configured byte order engine.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// MaxDepth returns the configured nesting limit.
func (c *Config) MaxDepth() int {
	return c.maxDepth
}

func (c *Config) setMaxDepth(depth int) error {
	if depth < 1 {
		return fmt.Errorf("%w: max depth must be at least 1, got %d", errs.ErrInvalidOption, depth)
	}
	c.maxDepth = depth

	return nil
}

// Option represents a functional option for configuring a Decoder or Encoder.
type Option = options.Option[*Config]

// WithBigEndian selects the big-endian Java Edition byte order.
// It is the default option.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian selects the little-endian Bedrock Edition byte order.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithMaxDepth sets the nesting limit for lists and compounds. The root
// compound is depth 1, so WithMaxDepth(1) only admits flat documents.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		return c.setMaxDepth(depth)
	})
}

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
	})
}
