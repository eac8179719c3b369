package view

import (
	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
)

// Publication exposes metadata embedded in generated output.
type Publication struct {
	cfg *config.Config
}

// NewPublication wraps cfg. A nil cfg is treated as an empty configuration.
func NewPublication(cfg *config.Config) *Publication {
	return &Publication{cfg: orEmpty(cfg)}
}

// PublicationFromPath loads path through the global cache.
func PublicationFromPath(path string) (*Publication, error) {
	return PublicationFromCache(cache.Global(), path)
}

// PublicationFromCache loads path through c.
func PublicationFromCache(c *cache.Cache, path string) (*Publication, error) {
	return fromCache(c, path, NewPublication)
}

func (v *Publication) Config() *config.Config { return v.cfg }

func (v *Publication) Author() string { return v.cfg.Publication.Author }

func (v *Publication) Copyright() string { return v.cfg.Publication.Copyright }

// Site returns the site URL, if one is configured.
func (v *Publication) Site() (string, bool) {
	return v.cfg.Publication.Site, v.cfg.Publication.Site != ""
}
