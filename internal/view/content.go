package view

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
)

// Content resolves topics and where their files live.
type Content struct {
	cfg *config.Config
}

// NewContent wraps cfg. A nil cfg is treated as an empty configuration.
func NewContent(cfg *config.Config) *Content {
	return &Content{cfg: orEmpty(cfg)}
}

// ContentFromPath loads path through the global cache.
func ContentFromPath(path string) (*Content, error) {
	return ContentFromCache(cache.Global(), path)
}

// ContentFromCache loads path through c.
func ContentFromCache(c *cache.Cache, path string) (*Content, error) {
	return fromCache(c, path, NewContent)
}

// Config returns the wrapped configuration.
func (v *Content) Config() *config.Config { return v.cfg }

// Topics returns a copy of the topic map.
func (v *Content) Topics() map[string]config.TopicConfig {
	return maps.Clone(v.cfg.Content.Topics)
}

// TopicKeys returns the topic keys in sorted order.
func (v *Content) TopicKeys() []string {
	return slices.Sorted(maps.Keys(v.cfg.Content.Topics))
}

// Topic returns the topic for key.
func (v *Content) Topic(key string) (config.TopicConfig, bool) {
	t, ok := v.cfg.Content.Topics[key]
	return t, ok
}

// TopicPath returns the directory configured for key, as written in the
// configuration.
func (v *Content) TopicPath(key string) (string, bool) {
	t, ok := v.cfg.Content.Topics[key]
	if !ok {
		return "", false
	}
	return t.Directory, true
}

// ValidateTopic fails with a config.ErrNotFound error naming key when no
// such topic is declared.
func (v *Content) ValidateTopic(key string) error {
	if _, ok := v.cfg.Content.Topics[key]; !ok {
		return config.NotFound("topic", key)
	}
	return nil
}

// BaseDir returns content.base_dir as configured.
func (v *Content) BaseDir() string { return v.cfg.Content.BaseDir }

// BaseDirPath returns the base directory resolved against the directory of
// the configuration file when it is relative and the source is known.
func (v *Content) BaseDirPath() string {
	base := v.cfg.Content.BaseDir
	if filepath.IsAbs(base) || v.cfg.Source == "" {
		return filepath.Clean(base)
	}
	return filepath.Join(filepath.Dir(v.cfg.Source), base)
}

// TopicAbsolutePath joins the base directory and the topic's directory.
// An absolute topic directory is returned as is.
func (v *Content) TopicAbsolutePath(key string) (string, bool) {
	t, ok := v.cfg.Content.Topics[key]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(t.Directory) {
		return filepath.Clean(t.Directory), true
	}
	return filepath.Join(v.BaseDirPath(), t.Directory), true
}

// Tags returns a copy of the tags declared for key, or nil.
func (v *Content) Tags(key string) []string {
	return slices.Clone(v.cfg.Content.Tags[key])
}
