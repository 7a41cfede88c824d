package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/recoverlink/recoverlink/internal/flagx"
)

// Duration wraps time.Duration so JSON can specify intervals either as
// strings like "168h" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-zero values are copied into the runtime Config.
type JsonConfig struct {
	DataDir      string   `json:"data_dir"`
	KeyringPath  string   `json:"keyring_path"`
	DatabasePath string   `json:"database_path"`
	CodeTTL      Duration `json:"code_ttl"`
	DisplayName  string   `json:"display_name"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic: a config file that exists but cannot be used is a
// startup defect, not a condition to run through.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.KeyringPath != "" {
		cfg.KeyringPath = jc.KeyringPath
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.CodeTTL.Duration != 0 {
		cfg.CodeTTL = jc.CodeTTL.Duration
	}
	if jc.DisplayName != "" {
		cfg.DisplayName = jc.DisplayName
	}
}
