package region

import (
	"log/slog"

	"github.com/arloliu/featidx/covering"
	"github.com/arloliu/featidx/internal/logging"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/textpool"
)

// Config holds the options of Open, FromBytes and NewWriter.
type Config struct {
	logger     *logging.Logger
	cacheBytes int64
	coverer    covering.Coverer
}

// Option configures a region reader or writer.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{
		logger:     logging.Noop(),
		cacheBytes: textpool.DefaultCacheBytes,
		coverer: covering.Coverer{
			Bounds:       covering.WorldBounds,
			Depth:        covering.DefaultDepth,
			MaxIntervals: covering.DefaultMaxIntervals,
		},
	}
}

// WithLogger sets the logger for section load and write events.
// Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logging.Wrap(l)
	})
}

// WithCacheBytes sets the decoded block cache budget of the metadata text pool.
// The default is textpool.DefaultCacheBytes; 0 disables the cache.
func WithCacheBytes(n int64) Option {
	return options.NoError(func(c *Config) {
		c.cacheBytes = n
	})
}

// WithCoverer sets the covering the locality section was built with.
// The default covers WorldBounds at covering.DefaultDepth.
func WithCoverer(coverer covering.Coverer) Option {
	return options.New(func(c *Config) error {
		if err := coverer.Validate(); err != nil {
			return err
		}
		c.coverer = coverer

		return nil
	})
}
