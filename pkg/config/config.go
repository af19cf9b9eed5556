// Package config loads skaff's own settings: embedded defaults, then the
// user's config file, then SKAFF_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds tool-level settings, as opposed to a template's descriptor.
type Config struct {
	// PromptAttempts bounds the re-prompt loop for required parameters.
	PromptAttempts int `koanf:"prompt_attempts"`
	// DefaultMode is the merge mode used when no flag selects one.
	DefaultMode string `koanf:"default_mode"`
	// Color toggles styled console output.
	Color bool `koanf:"color"`
	// CacheDir overrides where cloned templates are kept.
	CacheDir string `koanf:"cache_dir"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"prompt_attempts": 3,
		"default_mode":    "create",
		"color":           true,
		"cache_dir":       "",
	}
}

// Path returns the user config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "skaff", "config.toml")
}

// Load layers defaults, the config file, and the environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load default config")
	}

	if path := Path(); fileExists(path) {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path)
		}
	}

	err := k.Load(env.Provider("SKAFF_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SKAFF_"))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot read environment config")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}

	switch cfg.DefaultMode {
	case "create", "force", "append":
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"default_mode: %q is not one of create, force, append", cfg.DefaultMode)
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
