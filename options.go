package siq

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/flate"
)

type readConfig struct {
	limits    Limits
	logger    *log.Logger
	onUnknown func(*UnknownResourceError)
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	return cfg
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLogger sets the logger used while loading. Unknown members are
// reported at warning level, loaded members at debug level.
func WithLogger(l *log.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

// WithUnknownResourceHandler registers fn to receive every member skipped
// as an unknown resource, in container order.
func WithUnknownResourceHandler(fn func(*UnknownResourceError)) ReadOption {
	return func(c *readConfig) { c.onUnknown = fn }
}

type writeConfig struct {
	compression Compression
	level       int
	logger      *log.Logger
}

type WriteOption func(*writeConfig)

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{compression: CompDeflate, level: flate.DefaultCompression}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	return cfg
}

// WithResourceCompression sets the zip method used for resource members.
// content.xml and [Content_Types].xml are always deflated.
func WithResourceCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithCompressionLevel sets the deflate level, from flate.HuffmanOnly to
// flate.BestCompression.
func WithCompressionLevel(level int) WriteOption {
	return func(c *writeConfig) { c.level = level }
}

func WithWriteLogger(l *log.Logger) WriteOption {
	return func(c *writeConfig) { c.logger = l }
}

func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "siq"})
}
