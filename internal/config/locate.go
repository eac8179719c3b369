package config

import "os"

const (
	// EnvPath names the environment variable that overrides the config location.
	EnvPath = "FOLIO_CONFIG"
	// DefaultPath is the config file looked up in the working directory.
	DefaultPath = "folio.yaml"
)

// Locate picks the configuration path: an explicit value (the --config
// flag) wins, then $FOLIO_CONFIG, then folio.yaml in the working directory.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p, ok := os.LookupEnv(EnvPath); ok && p != "" {
		return p
	}
	return DefaultPath
}
