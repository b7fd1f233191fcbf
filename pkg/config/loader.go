package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	perrors "github.com/BardicNoel/perktree/pkg/errors"
)

// Config file search locations.
const (
	// GlobalConfigDir is the XDG config directory name
	GlobalConfigDir = "perktree"
	// GlobalConfigFile is the global config file name
	GlobalConfigFile = "config.toml"
	// ProjectConfigFile is the project-local config file name
	ProjectConfigFile = "perktree.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PERKTREE"
)

// Load loads configuration from files, environment and viper settings.
// Precedence (later overrides earlier):
//  1. Default() values
//  2. $XDG_CONFIG_HOME/perktree/config.toml (global)
//  3. ./perktree.toml (project)
//  4. The explicit file in the "config" key, which must exist
//  5. Environment variables (PERKTREE_*)
//  6. CLI flags (already bound to viper)
//
// Missing global and project files are silently ignored. The result is
// validated before it is returned.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaultMap, err := structToMap(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(defaultMap); err != nil {
		return nil, err
	}

	for _, path := range []string{globalConfigPath(), projectConfigPath()} {
		if path == "" {
			continue
		}
		if err := loadConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	if explicitPath := v.GetString("config"); explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file not found: %s", explicitPath)
		}
		if err := loadConfigFile(v, explicitPath); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg, viperDecodeHook()); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// globalConfigPath returns the global config file path if it exists.
func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}

	path := filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// projectConfigPath returns the project config file path if it exists.
func projectConfigPath() string {
	if _, err := os.Stat(ProjectConfigFile); err == nil {
		return ProjectConfigFile
	}
	return ""
}

// loadConfigFile reads a config file and merges it into v.
// The file type follows the extension; files without one are read as TOML.
func loadConfigFile(v *viper.Viper, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	fileViper := viper.New()
	fileViper.SetConfigType(configType(path))
	if err := fileViper.ReadConfig(file); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	return v.MergeConfigMap(fileViper.AllSettings())
}

func configType(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "yaml", "yml", "json":
		return ext
	default:
		return "toml"
	}
}

// viperDecodeHook returns the decoder config with duration and slice hooks.
func viperDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// structToMap converts a struct to a map for viper.MergeConfigMap.
func structToMap(cfg *Config) (map[string]any, error) {
	result := make(map[string]any)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     &result,
		DecodeHook: durationToStringHook(),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	return result, nil
}

// durationToStringHook converts time.Duration to string so file values such
// as "30s" and defaults decode the same way.
func durationToStringHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data any) (any, error) {
		if from != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return data.(time.Duration).String(), nil
	}
}
