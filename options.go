package dynarr

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a vector at construction.
type Option func(*options)

// WithLogger sets the logger used by a single vector instead of the package
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}
