package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with values from RECOVERLINK_* environment
// variables. Unset variables leave the corresponding fields untouched, so the
// defaults/JSON layer survives. Parse errors panic for the same reason JSON
// errors do: a malformed environment is a startup defect.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
