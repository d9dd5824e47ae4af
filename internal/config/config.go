// Package config defines service configuration structures and loading hooks.
package config

import "strings"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":4001".
	Addr string `koanf:"addr"`

	// StoreDriver selects the document store: file, sqlite or memory.
	StoreDriver string `koanf:"store_driver"`

	// DataFile is the JSON document used by the file driver.
	DataFile string `koanf:"data_file"`

	// SQLitePath is the database used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// MaxImportBytes caps POST /data/import bodies.
	MaxImportBytes int64 `koanf:"max_import_bytes"`

	// AllowedOrigins is a comma separated CORS allow list.
	AllowedOrigins string `koanf:"allowed_origins"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels on every metric, as "k=v,k=v".
	MetricsLabels string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":4001",
		StoreDriver:      "file",
		DataFile:         "data/scoreboard.json",
		SQLitePath:       "data/scoreboard.db",
		MaxImportBytes:   10 << 20,
		AllowedOrigins:   "http://localhost:4000,http://localhost:3000",
		MetricsNamespace: "scoreboard",
	}
}

// Origins splits AllowedOrigins into its entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ConstLabels parses MetricsLabels. Malformed pairs are skipped; Validate
// rejects them before this is used at startup.
func (c *Config) ConstLabels() map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(c.MetricsLabels, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if k = strings.TrimSpace(k); ok && k != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

// StoreTarget returns the path the selected driver persists to.
func (c *Config) StoreTarget() string {
	switch c.StoreDriver {
	case "sqlite":
		return c.SQLitePath
	case "file":
		return c.DataFile
	default:
		return ""
	}
}
