package cleanup

import (
	"time"

	"github.com/lumenworks/galleria-go/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config
// package.
type Config struct {
	CleanupInterval  time.Duration
	VerboseReporting bool
}

// NewConfig creates a cleanup configuration from the already-initialized
// values in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CleanupInterval,
		VerboseReporting: config.CleanupVerbose,
	}
}
