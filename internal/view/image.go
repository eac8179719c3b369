package view

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
)

// DefaultQuality is used for a format/size pair with no quality entry.
const DefaultQuality = 85

// Image resolves image size presets and encodings.
type Image struct {
	cfg *config.Config
}

// NewImage wraps cfg. A nil cfg is treated as an empty configuration.
func NewImage(cfg *config.Config) *Image {
	return &Image{cfg: orEmpty(cfg)}
}

// ImageFromPath loads path through the global cache.
func ImageFromPath(path string) (*Image, error) {
	return ImageFromCache(cache.Global(), path)
}

// ImageFromCache loads path through c.
func ImageFromCache(c *cache.Cache, path string) (*Image, error) {
	return fromCache(c, path, NewImage)
}

// Config returns the wrapped configuration.
func (v *Image) Config() *config.Config { return v.cfg }

// Formats returns the configured formats in their configured order.
func (v *Image) Formats() []string {
	return slices.Clone(v.cfg.Images.Formats)
}

// Sizes returns a copy of the size map.
func (v *Image) Sizes() map[string]config.ImageSize {
	return maps.Clone(v.cfg.Images.Sizes)
}

// SizeKeys returns the size keys in sorted order.
func (v *Image) SizeKeys() []string {
	return slices.Sorted(maps.Keys(v.cfg.Images.Sizes))
}

// Size returns the preset for key.
func (v *Image) Size(key string) (config.ImageSize, bool) {
	s, ok := v.cfg.Images.Sizes[key]
	return s, ok
}

// ValidateSize fails with a config.ErrNotFound error naming key when no
// such size is declared.
func (v *Image) ValidateSize(key string) error {
	if _, ok := v.cfg.Images.Sizes[key]; !ok {
		return config.NotFound("image size", key)
	}
	return nil
}

// ValidateFormat fails with a config.ErrNotFound error naming format when
// it is not listed in images.formats.
func (v *Image) ValidateFormat(format string) error {
	if !slices.Contains(v.cfg.Images.Formats, format) {
		return config.NotFound("image format", format)
	}
	return nil
}

// FormatDescription returns the description configured for format.
func (v *Image) FormatDescription(format string) (string, bool) {
	d, ok := v.cfg.Images.FormatDescriptions[format]
	return d, ok
}

// Quality returns the encoder quality for format at size, or
// DefaultQuality when the table has no entry.
func (v *Image) Quality(format, size string) int {
	if q, ok := v.cfg.Images.Quality[format][size]; ok {
		return q
	}
	return DefaultQuality
}

// NamingPattern returns images.naming.pattern, or the default pattern.
func (v *Image) NamingPattern() string {
	if n := v.cfg.Images.Naming; n != nil && n.Pattern != "" {
		return n.Pattern
	}
	return config.DefaultNamingPattern
}

// OutputName expands the naming pattern for an image called name rendered
// at size in format. Both size and format must be declared.
func (v *Image) OutputName(name, size, format string) (string, error) {
	if err := v.ValidateSize(size); err != nil {
		return "", err
	}
	if err := v.ValidateFormat(format); err != nil {
		return "", err
	}
	preset := v.cfg.Images.Sizes[size]
	r := strings.NewReplacer(
		"{name}", name,
		"{size}", size,
		"{format}", format,
		"{width}", strconv.Itoa(preset.WidthPx),
		"{height}", strconv.Itoa(preset.HeightPx),
	)
	return r.Replace(v.NamingPattern()), nil
}
