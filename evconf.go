package evconf

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/cooper/evented-configuration/notify"
	"github.com/cooper/evented-configuration/store"
	"github.com/cooper/evented-configuration/value"
)

// Config is an evented configuration: a file path, the store of values
// parsed from it, and a dispatcher that announces every change the parser
// commits. Construct with New, load with Parse, and call Parse again
// whenever the file should be re-read in place.
//
// A Config is not safe for concurrent use. Callers that share one across
// goroutines serialize access themselves.
type Config struct {
	path       string
	store      *store.Store
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

// New returns a Config bound to the file at path. The file is not touched
// until Parse; it does not even have to exist yet. New fails only when
// path is empty.
func New(path string, opts ...Option) (*Config, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	c := &Config{
		path:       path,
		store:      store.New(),
		dispatcher: notify.NewDispatcher(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Path returns the bound file path.
func (c *Config) Path() string { return c.path }

// Store returns the backing store. The store is shared, not copied, and
// outlives any single parse; hand it to another Config with WithStore to
// carry values across.
func (c *Config) Store() *store.Store { return c.store }

// Dispatcher returns the dispatcher that delivers this Config's change
// events, for callers that want to work with events directly.
func (c *Config) Dispatcher() *notify.Dispatcher { return c.dispatcher }

// Get returns the stored value for a key and whether it exists.
func (c *Config) Get(b Block, key string) (value.Value, bool) {
	return c.store.Get(b, key)
}

// HasBlock reports whether the block holds at least one key.
func (c *Config) HasBlock(b Block) bool { return c.store.HasBlock(b) }

// Names returns the sorted names of every block of the given type. An
// empty type lists unnamed blocks.
func (c *Config) Names(blockType string) []string { return c.store.Names(blockType) }

// Keys returns the sorted keys of a block.
func (c *Config) Keys(b Block) []string { return c.store.Keys(b) }

// Values returns a block's values in sorted-key order.
func (c *Config) Values(b Block) []value.Value { return c.store.Values(b) }

// Entries returns a copy of a block's key-value map.
func (c *Config) Entries(b Block) map[string]value.Value { return c.store.Entries(b) }

// Event returns the change event Parse fires for a key, for use with the
// dispatcher directly.
func (c *Config) Event(b Block, key string) notify.Event {
	return notify.NewEvent(b.Type, b.Name, key)
}

// OnChange registers fn to run whenever Parse commits a new value for the
// key. The listener receives the old value (nil on first assignment) and
// the new one. Options control priority and naming; see notify.
func (c *Config) OnChange(b Block, key string, fn notify.Listener, opts ...notify.ListenerOption) *notify.Registration {
	return c.dispatcher.On(c.Event(b, key), fn, opts...)
}

// require fetches a value for the typed accessors.
func (c *Config) require(b Block, key string) (value.Value, error) {
	v, ok := c.store.Get(b, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrKeyNotFound, b, key)
	}
	return v, nil
}

func (c *Config) typeError(b Block, key, expected string, v value.Value, err error) error {
	return &TypeError{
		Block:    b.String(),
		Key:      key,
		Expected: expected,
		Actual:   v.Kind().String(),
		Err:      err,
	}
}

// GetString returns the value for key as a string. Numbers convert to
// their text form; sequences do not convert.
func (c *Config) GetString(b Block, key string) (string, error) {
	v, err := c.require(b, key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v.Native())
	if err != nil {
		return "", c.typeError(b, key, "string", v, err)
	}
	return s, nil
}

// GetInt returns the value for key as an int. Strings convert when they
// parse as numbers; decimal values truncate.
func (c *Config) GetInt(b Block, key string) (int, error) {
	v, err := c.require(b, key)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToIntE(v.Native())
	if err != nil {
		return 0, c.typeError(b, key, "int", v, err)
	}
	return n, nil
}

// GetFloat returns the value for key as a float64. Strings convert when
// they parse as numbers.
func (c *Config) GetFloat(b Block, key string) (float64, error) {
	v, err := c.require(b, key)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(v.Native())
	if err != nil {
		return 0, c.typeError(b, key, "float", v, err)
	}
	return f, nil
}

// GetBool returns the value for key as a bool. The strings "true", "1",
// "t" and friends convert, as do the numbers 0 and 1.
func (c *Config) GetBool(b Block, key string) (bool, error) {
	v, err := c.require(b, key)
	if err != nil {
		return false, err
	}
	t, err := cast.ToBoolE(v.Native())
	if err != nil {
		return false, c.typeError(b, key, "bool", v, err)
	}
	return t, nil
}

// GetDuration returns the value for key as a time.Duration. Strings use
// Go duration syntax such as "500ms" or "2h".
func (c *Config) GetDuration(b Block, key string) (time.Duration, error) {
	v, err := c.require(b, key)
	if err != nil {
		return 0, err
	}
	d, err := cast.ToDurationE(v.Native())
	if err != nil {
		return 0, c.typeError(b, key, "duration", v, err)
	}
	return d, nil
}

// GetStringSlice returns the value for key as a slice of strings. A
// sequence converts element-wise; a single scalar becomes a one-element
// slice. Nested sequences do not convert.
func (c *Config) GetStringSlice(b Block, key string) ([]string, error) {
	v, err := c.require(b, key)
	if err != nil {
		return nil, err
	}
	ss, err := cast.ToStringSliceE(v.Native())
	if err != nil {
		return nil, c.typeError(b, key, "string slice", v, err)
	}
	return ss, nil
}

// ScanBlock decodes a block's entries into target, which must be a
// pointer to a struct or a map. Struct fields match keys
// case-insensitively; an "evconf" struct tag overrides the match.
// Conversion is lenient: numeric strings fill number fields, scalars fill
// string fields, and duration syntax fills time.Duration fields. A block
// with no stored keys leaves target untouched.
func (c *Config) ScanBlock(b Block, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "evconf",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("building block decoder: %w", err)
	}
	entries := c.store.Entries(b)
	native := make(map[string]any, len(entries))
	for k, v := range entries {
		native[k] = v.Native()
	}
	if err := dec.Decode(native); err != nil {
		return fmt.Errorf("scanning block %s: %w", b, err)
	}
	return nil
}
