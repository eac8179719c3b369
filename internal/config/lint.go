package config

import (
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"regexp"
	"slices"

	"go.uber.org/multierr"
)

const (
	minQuality = 1
	maxQuality = 100
)

// DefaultNamingPattern is used when images.naming is not configured.
const DefaultNamingPattern = "{name}-{size}.{format}"

// NamingPlaceholders lists the placeholders a naming pattern may use.
var NamingPlaceholders = []string{"name", "size", "format", "width", "height"}

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders returns the placeholder names used by pattern, in order.
func Placeholders(pattern string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		names = append(names, m[1])
	}
	return names
}

// Lint reports what the loader deliberately accepts: a site that is not an
// absolute URL, topics sharing a directory, tags for undeclared topics,
// quality entries outside 1..100 or for undeclared formats or sizes,
// descriptions for undeclared formats, and unknown naming placeholders.
// All findings are returned together, combined with multierr.
func (c *Config) Lint() error {
	var errs error
	add := func(field, format string, a ...any) {
		errs = multierr.Append(errs, &Error{
			Kind:  KindValidation,
			Path:  c.Source,
			Field: field,
			Msg:   fmt.Sprintf(format, a...),
		})
	}

	if site := c.Publication.Site; site != "" {
		if u, err := url.Parse(site); err != nil || u.Scheme == "" || u.Host == "" {
			add("publication.site", "%q is not an absolute URL", site)
		}
	}

	owner := make(map[string]string, len(c.Content.Topics))
	for _, key := range slices.Sorted(maps.Keys(c.Content.Topics)) {
		dir := filepath.Clean(c.Content.Topics[key].Directory)
		if first, ok := owner[dir]; ok {
			add("content.topics."+key+".directory", "%q is also used by topic %q", dir, first)
			continue
		}
		owner[dir] = key
	}

	for _, key := range slices.Sorted(maps.Keys(c.Content.Tags)) {
		if _, ok := c.Content.Topics[key]; !ok {
			add("content.tags."+key, "no topic %q is declared", key)
		}
	}

	formats := make(map[string]bool, len(c.Images.Formats))
	for _, f := range c.Images.Formats {
		formats[f] = true
	}
	for _, format := range slices.Sorted(maps.Keys(c.Images.Quality)) {
		if !formats[format] {
			add("images.quality."+format, "format %q is not listed in images.formats", format)
		}
		for _, size := range slices.Sorted(maps.Keys(c.Images.Quality[format])) {
			field := "images.quality." + format + "." + size
			if _, ok := c.Images.Sizes[size]; !ok {
				add(field, "size %q is not declared in images.sizes", size)
			}
			if q := c.Images.Quality[format][size]; q < minQuality || q > maxQuality {
				add(field, "must be between %d and %d, got %d", minQuality, maxQuality, q)
			}
		}
	}
	for _, format := range slices.Sorted(maps.Keys(c.Images.FormatDescriptions)) {
		if !formats[format] {
			add("images.format_descriptions."+format, "format %q is not listed in images.formats", format)
		}
	}

	if c.Images.Naming != nil {
		for _, name := range Placeholders(c.Images.Naming.Pattern) {
			if !slices.Contains(NamingPlaceholders, name) {
				add("images.naming.pattern", "unknown placeholder {%s}", name)
			}
		}
	}
	return errs
}
