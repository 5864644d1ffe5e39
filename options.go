package objcache

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures optional cache behavior. The fixed shape of the cache
// lives in Config; options cover the ambient concerns around it.
type Option func(*options)

// WithLogger configures structured logging for cache events (evictions,
// invalidations). If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. If nil is passed, metrics stay disabled.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
