package config

import (
	"maps"
	"slices"
	"strings"
)

// Validate checks the configuration and returns the first broken invariant
// as an *Error of KindValidation naming the dotted field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Publication.Author) == "" {
		return validationError("publication.author", "must not be empty")
	}
	if strings.TrimSpace(c.Publication.Copyright) == "" {
		return validationError("publication.copyright", "must not be empty")
	}
	if strings.TrimSpace(c.Content.BaseDir) == "" {
		return validationError("content.base_dir", "must not be empty")
	}
	if err := c.Images.validate(); err != nil {
		return err
	}
	return nil
}

func (im *ImagesConfig) validate() error {
	if len(im.Formats) == 0 {
		return validationError("images.formats", "must list at least one format")
	}
	for i, f := range im.Formats {
		if strings.TrimSpace(f) == "" {
			return validationError("images.formats", "entry %d is empty", i)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(im.Sizes)) {
		size := im.Sizes[key]
		if size.WidthPx <= 0 {
			return validationError("images.sizes."+key+".width_px", "must be positive, got %d", size.WidthPx)
		}
		if size.HeightPx <= 0 {
			return validationError("images.sizes."+key+".height_px", "must be positive, got %d", size.HeightPx)
		}
	}

	return nil
}
