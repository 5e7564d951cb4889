package evconf

import (
	"log/slog"

	"github.com/cooper/evented-configuration/notify"
	"github.com/cooper/evented-configuration/store"
)

// Option configures a Config at construction.
type Option func(*Config)

// WithStore backs the Config with an existing store instead of a fresh
// empty one. The store may already hold values, and it may be shared with
// other configurations. A nil store is ignored.
func WithStore(s *store.Store) Option {
	return func(c *Config) {
		if s != nil {
			c.store = s
		}
	}
}

// WithDispatcher delivers this Config's change events through an existing
// dispatcher instead of a fresh one. A nil dispatcher is ignored.
func WithDispatcher(d *notify.Dispatcher) Option {
	return func(c *Config) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// WithLogger sets the logger for parse diagnostics. The default is
// slog.Default. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}
