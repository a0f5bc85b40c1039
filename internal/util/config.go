package util

import (
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultDBPath       = "songbook-state.db"
	DefaultFetchTimeout = 15 * time.Second
	DefaultFetchRetries = 3
	DefaultServeAddr    = ":8080"
	DefaultAuditWorkers = 8
)

// RegisterDefaults installs the default values for every configuration key
func RegisterDefaults(v *viper.Viper) {
	v.SetDefault("db", DefaultDBPath)
	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("fetch.retries", DefaultFetchRetries)
	v.SetDefault("fetch.keep", 5)
	v.SetDefault("serve.addr", DefaultServeAddr)
	v.SetDefault("audit.workers", DefaultAuditWorkers)
}
