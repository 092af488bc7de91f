package linear

import (
	"github.com/YuminosukeSato/insurecost/pkg/log"
)

// defaultParallelThreshold is the row count above which the design matrix is filled and
// batches are predicted on several goroutines.
const defaultParallelThreshold = 1000

// Option configures Fit.
type Option func(*config)

type config struct {
	rcond             float64
	rcondSet          bool
	featureNames      []string
	logger            log.Logger
	parallelThreshold int
}

func newConfig(opts []Option) config {
	cfg := config{parallelThreshold: defaultParallelThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("linear")
	}
	return cfg
}

// tolerance returns the relative singular-value cutoff for an m×n design matrix.
// Without WithRcond it is machine epsilon scaled by the larger dimension.
func (c config) tolerance(m, n int) float64 {
	if c.rcondSet {
		return c.rcond
	}
	return float64(max(m, n)) * machineEpsilon
}

// WithRcond sets the relative cutoff below which singular values are treated as zero
// when determining the rank of the design matrix.
func WithRcond(rcond float64) Option {
	return func(c *config) {
		c.rcond = rcond
		c.rcondSet = true
	}
}

// WithFeatureNames labels the coefficients. The number of names must equal the number
// of feature columns.
func WithFeatureNames(names ...string) Option {
	return func(c *config) {
		c.featureNames = append([]string(nil), names...)
	}
}

// WithLogger overrides the logger used while fitting and by the returned model.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithParallelThreshold sets the row count above which work is split across goroutines.
func WithParallelThreshold(rows int) Option {
	return func(c *config) {
		c.parallelThreshold = rows
	}
}
