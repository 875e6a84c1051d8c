package textpool

import (
	"fmt"

	"github.com/arloliu/featidx/compress"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/internal/options"
)

const (
	// DefaultBlockBytes is the default raw size of a block before compression.
	DefaultBlockBytes = 16 * 1024
	// DefaultCompression is the default block compression.
	DefaultCompression = format.CompressionZstd
	// DefaultCacheBytes is the default budget of the decoded-block cache.
	DefaultCacheBytes = 256 * 1024
)

// BuilderConfig holds the options of a Builder.
type BuilderConfig struct {
	blockBytes  int
	compression format.CompressionType
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*BuilderConfig]

func newBuilderConfig() *BuilderConfig {
	return &BuilderConfig{
		blockBytes:  DefaultBlockBytes,
		compression: DefaultCompression,
	}
}

// WithBlockBytes sets the raw block size threshold. A block is closed as soon as
// it holds at least n bytes, so one long string forms a block of its own.
func WithBlockBytes(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n <= 0 || n > compress.MaxBlockSize {
			return fmt.Errorf("invalid text pool block size: %d", n)
		}
		c.blockBytes = n

		return nil
	})
}

// WithCompression sets the block compression.
func WithCompression(ct format.CompressionType) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// LoadConfig holds the options of Load.
type LoadConfig struct {
	cacheBytes int64
}

// LoadOption configures Load.
type LoadOption = options.Option[*LoadConfig]

// WithCacheBytes sets the budget of the decoded-block cache. Zero disables caching;
// every Fetch then decompresses its block again.
func WithCacheBytes(n int64) LoadOption {
	return options.NoError(func(c *LoadConfig) {
		c.cacheBytes = max(n, 0)
	})
}
