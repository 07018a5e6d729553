package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config fields from environment variables declared via
// the struct's `env` tags. Variables that are not set leave the current
// values untouched, so defaults and JSON-file values survive.
//
// If a variable is present but cannot be parsed (e.g. a malformed
// duration), the function panics.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
