// Package config provides configuration management for folio-managed
// publishing repositories.
//
// The package uses a Provider interface to abstract configuration loading, with
// the primary implementation (Loader) reading YAML files through a
// filesys.ReadFS.
//
// # Configuration Structure
//
//	publication:
//	  author: Jane Doe                  # required
//	  copyright: "© Jane Doe"           # required
//	  site: https://example.com         # optional
//	content:
//	  base_dir: content                 # required
//	  topics:
//	    blog:
//	      name: Blog
//	      description: Long-form articles
//	      directory: blog
//	  tags:                             # optional, topic key -> tags
//	    blog: [go]
//	images:
//	  formats: [jpg, webp]              # at least one
//	  sizes:
//	    thumbnail: {width_px: 480, height_px: 320, description: Small image}
//	  format_descriptions: {jpg: JPEG}  # optional
//	  naming: {pattern: "{name}-{size}.{format}"}  # optional
//	  quality: {jpg: {thumbnail: 80}}   # optional
//
// Unknown keys are ignored so newer files keep loading with older binaries.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.Locate(flagPath))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Most callers should go through internal/cache or internal/view instead,
// which avoid re-reading the file on every call.
//
// # Configuration Validation
//
// Loading stops at the first violation:
//   - publication.author and publication.copyright must not be blank
//   - content.base_dir must not be blank
//   - images.formats must list at least one non-blank format
//   - every image size must have positive width_px and height_px
//
// A site that is not an absolute URL, quality values outside 1..100 and
// cross-references (shared topic directories, tags for unknown topics,
// quality entries for unknown sizes) are accepted by the loader and
// reported by Config.Lint.
//
// # Error Handling
//
// Every error from Load and Parse is an *Error. Match the kind with
// errors.Is:
//   - ErrIO: the file could not be read or is not UTF-8
//   - ErrParse: the content is not well-formed YAML for this schema
//   - ErrValidation: a required invariant is broken
//   - ErrNotFound: a view was asked to assert a key that does not exist
//
// # Thread Safety
//
// Loading is stateless and safe for concurrent use. A loaded Config is
// shared by the cache and must not be modified.
package config
