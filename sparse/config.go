package sparse

import (
	"fmt"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/internal/options"
)

// DefaultBlockSize is the number of entries per block when no option overrides it.
const DefaultBlockSize = 64

// MaxBlockSize is the largest accepted number of entries per block.
const MaxBlockSize = 1 << 16

// BuilderConfig holds the options of a Builder.
type BuilderConfig struct {
	blockSize int
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*BuilderConfig]

func newBuilderConfig() *BuilderConfig {
	return &BuilderConfig{blockSize: DefaultBlockSize}
}

// BlockSize returns the configured number of entries per block.
func (c *BuilderConfig) BlockSize() int {
	return c.blockSize
}

// WithBlockSize sets the number of entries per block.
//
// Smaller blocks make a single lookup cheaper; larger blocks compress better.
// The value must be in [1, MaxBlockSize].
func WithBlockSize(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n <= 0 || n > MaxBlockSize {
			return fmt.Errorf("%w: %d", errs.ErrInvalidBlockSize, n)
		}
		c.blockSize = n

		return nil
	})
}
