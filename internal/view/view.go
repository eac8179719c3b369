// Package view provides read-only, concern-specific accessors over a loaded
// configuration.
//
// Lookups that answer "is this present, and what is it" return (value, bool).
// Validate* methods assert presence ahead of an action and return an error
// matching config.ErrNotFound that names the missing key. Maps and slices
// handed out are copies; the underlying Config is shared through the cache
// and never modified.
package view

import (
	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
)

// ConfigView is implemented by every view.
type ConfigView interface {
	// Config returns the wrapped configuration. It must not be modified.
	Config() *config.Config
}

var (
	_ ConfigView = (*Content)(nil)
	_ ConfigView = (*Image)(nil)
	_ ConfigView = (*Publication)(nil)
)

func orEmpty(cfg *config.Config) *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// fromCache loads path through c and wraps the result.
func fromCache[V ConfigView](c *cache.Cache, path string, wrap func(*config.Config) V) (V, error) {
	cfg, err := c.Get(path)
	if err != nil {
		var zero V
		return zero, err
	}
	return wrap(cfg), nil
}
