// Package config provides configuration loading and validation for folio.
// It reads the repository's YAML configuration file, maps it onto a typed
// model, and rejects anything that does not satisfy the model's invariants.
package config

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lc/folio/internal/filesys"
)

// Config holds the repository configuration. A Config returned by a Loader
// has been validated and must be treated as read-only: the cache shares one
// instance between every caller asking for the same file.
type Config struct {
	Publication PublicationConfig `yaml:"publication"`
	Content     ContentConfig     `yaml:"content"`
	Images      ImagesConfig      `yaml:"images"`

	// Source is the absolute path the configuration was loaded from. It is
	// empty for configurations built by Parse without a path.
	Source string `yaml:"-"`
}

// PublicationConfig holds metadata embedded in generated output.
type PublicationConfig struct {
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
	Site      string `yaml:"site,omitempty"`
}

// ContentConfig describes where content lives and how it is grouped.
type ContentConfig struct {
	BaseDir string                 `yaml:"base_dir"`
	Topics  map[string]TopicConfig `yaml:"topics"`
	Tags    map[string][]string    `yaml:"tags,omitempty"`
}

// TopicConfig is a named content category.
type TopicConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Directory   string `yaml:"directory"`
}

// ImagesConfig is the catalog of image encodings and size presets.
type ImagesConfig struct {
	Formats            []string                  `yaml:"formats"`
	Sizes              map[string]ImageSize      `yaml:"sizes"`
	FormatDescriptions map[string]string         `yaml:"format_descriptions,omitempty"`
	Naming             *NamingConfig             `yaml:"naming,omitempty"`
	Quality            map[string]map[string]int `yaml:"quality,omitempty"`
}

// ImageSize is a size preset for generated images.
type ImageSize struct {
	WidthPx     int    `yaml:"width_px"`
	HeightPx    int    `yaml:"height_px"`
	Description string `yaml:"description"`
}

// NamingConfig describes how generated image files are named. Pattern may
// use the placeholders {name}, {size}, {format}, {width} and {height}.
type NamingConfig struct {
	Pattern string `yaml:"pattern"`
}

// Provider defines the interface for loading configuration from a path.
type Provider interface {
	Load(path string) (*Config, error)
}

// Loader implements Provider on top of a filesys.ReadFS.
type Loader struct {
	fs filesys.ReadFS
}

// Verify Loader implements Provider interface.
var _ Provider = (*Loader)(nil)

// NewLoader creates a loader reading through fs.
func NewLoader(fs filesys.ReadFS) *Loader {
	return &Loader{fs: fs}
}

// Load reads, parses and validates the configuration at path using the
// local filesystem.
func Load(path string) (*Config, error) {
	return NewLoader(filesys.OS()).Load(path)
}

// Load reads, parses and validates the configuration at path. Every failure
// is an *Error: KindIO when the file cannot be read or is not UTF-8,
// KindParse for malformed YAML, KindValidation for the first broken
// invariant.
func (l *Loader) Load(path string) (*Config, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, ioError(path, errors.New("content is not valid UTF-8"))
	}
	return Parse(path, data)
}

// Parse decodes and validates configuration content. source names the
// content in errors and is stored as Config.Source.
func Parse(source string, data []byte) (*Config, error) {
	// The node tree is the only untyped form the document takes; it never
	// leaves this function.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		line, col, msg := describeYAMLError(err)
		return nil, parseError(source, line, col, msg)
	}

	cfg := &Config{}
	if root.Kind != 0 {
		if err := root.Decode(cfg); err != nil {
			line, col, msg := describeYAMLError(err)
			return nil, parseError(source, line, col, msg)
		}
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = source
		}
		return nil, err
	}
	return cfg, nil
}

var yamlLocation = regexp.MustCompile(`^line (\d+)(?:, column (\d+))?: `)

// describeYAMLError pulls the first reported position out of a yaml.v3
// error and returns the remaining text without the "yaml:" prefix.
func describeYAMLError(err error) (line, col int, msg string) {
	msgs := []string{err.Error()}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msgs = append([]string(nil), te.Errors...)
	}
	for i, m := range msgs {
		m = strings.TrimPrefix(m, "yaml: ")
		if sub := yamlLocation.FindStringSubmatch(m); sub != nil {
			if line == 0 {
				line, _ = strconv.Atoi(sub[1])
				col, _ = strconv.Atoi(sub[2])
			}
			m = m[len(sub[0]):]
		}
		msgs[i] = m
	}
	return line, col, strings.Join(msgs, "; ")
}
