package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for the config file, relative to $HOME.
	GlobalConfigDir = ".config/hostwatch"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. HOSTWATCH_LOG_PATH.
	EnvPrefix = "HOSTWATCH"
)

// Find locates the config file:
// 1. Explicit path (from --config flag), which must exist
// 2. ~/.config/hostwatch/config.yaml
//
// Returns an empty string when no file applies.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", nil
	}

	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads the config at path (empty means defaults only), applies
// HOSTWATCH_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Create "+filepath.Join("~", GlobalConfigDir, GlobalConfigFile)+" or pass --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault finds and loads the config, falling back to defaults.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// setDefaults registers every key so environment overrides reach Unmarshal
// even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("lock_file", d.LockFile)
	v.SetDefault("output_file", d.OutputFile)
	v.SetDefault("ssh.user", d.SSH.User)
	v.SetDefault("ssh.port", d.SSH.Port)
	v.SetDefault("ssh.identity_file", d.SSH.IdentityFile)
	v.SetDefault("ssh.timeout", d.SSH.Timeout.String())
	v.SetDefault("ssh.strict_host_key_checking", d.SSH.StrictHostKeyChecking)
	v.SetDefault("commands.process_count", d.Commands.ProcessCount)
	v.SetDefault("commands.top_memory", d.Commands.TopMemory)
	v.SetDefault("commands.disk_usage", d.Commands.DiskUsage)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.marker", d.Log.Marker)
	v.SetDefault("log.reset_on_truncate", d.Log.ResetOnTruncate)
	v.SetDefault("top_n", d.TopN)
}

// Render returns cfg as YAML in the same shape Load accepts.
func Render(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render config",
			"")
	}
	return out, nil
}
