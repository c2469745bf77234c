package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/hostwatch/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hostwatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hostwatch or lower the version field")
	}

	for name, path := range map[string]string{"lock_file": cfg.LockFile, "output_file": cfg.OutputFile} {
		if path == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' can't be empty", name),
				"Remove the key to use the default, or set an absolute path")
		}
		if !filepath.IsAbs(path) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' must be an absolute path, got %q", name, path),
				"The daemon changes directory to / after detaching, so relative paths would move")
		}
	}

	if cfg.LockFile == cfg.OutputFile {
		return errors.New(errors.ErrConfig,
			"lock_file and output_file point at the same file",
			"Give them different paths")
	}

	if cfg.SSH.Port < 0 || cfg.SSH.Port > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("ssh.port out of range: %d", cfg.SSH.Port),
			"Use a port between 1 and 65535, or 0 for the ssh_config default")
	}

	if cfg.SSH.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("ssh.timeout must be positive, got %s", cfg.SSH.Timeout),
			"Use a duration like 10s")
	}

	for name, cmd := range map[string]string{
		"commands.process_count": cfg.Commands.ProcessCount,
		"commands.top_memory":    cfg.Commands.TopMemory,
		"commands.disk_usage":    cfg.Commands.DiskUsage,
	} {
		if strings.TrimSpace(cmd) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' can't be empty", name),
				"Remove the key to use the default command")
		}
	}

	if cfg.Log.Path == "" {
		return errors.New(errors.ErrConfig,
			"'log.path' can't be empty",
			"Point it at the remote log to tail, e.g. /var/log/syslog")
	}

	if cfg.Log.Marker == "" {
		return errors.New(errors.ErrConfig,
			"'log.marker' can't be empty",
			"An empty marker would match every line")
	}

	if cfg.TopN < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("top_n must be at least 1, got %d", cfg.TopN),
			"Use the default of 5")
	}

	return nil
}
