package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the hostwatch configuration file.
// Every field has a default, so a missing file yields a working Config.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// LockFile is the local path whose existence marks a running instance.
	LockFile string `yaml:"lock_file" mapstructure:"lock_file"`

	// OutputFile receives the cycle reports and daemon diagnostics (append-only).
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`

	SSH      SSHConfig      `yaml:"ssh" mapstructure:"ssh"`
	Commands CommandsConfig `yaml:"commands" mapstructure:"commands"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`

	// TopN caps how many memory-consumer lines a report carries.
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// SSHConfig controls how the target is reached.
type SSHConfig struct {
	// User overrides ssh_config and $USER.
	User string `yaml:"user" mapstructure:"user"`

	// Port overrides ssh_config. Zero means "ssh_config or 22".
	Port int `yaml:"port" mapstructure:"port"`

	// IdentityFile is tried before the default keys.
	IdentityFile string `yaml:"identity_file" mapstructure:"identity_file"`

	// Timeout bounds dial and handshake.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// StrictHostKeyChecking verifies against ~/.ssh/known_hosts.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
}

// CommandsConfig holds the diagnostic command strings run each cycle.
type CommandsConfig struct {
	ProcessCount string `yaml:"process_count" mapstructure:"process_count"`
	TopMemory    string `yaml:"top_memory" mapstructure:"top_memory"`
	DiskUsage    string `yaml:"disk_usage" mapstructure:"disk_usage"`
}

// LogConfig controls the remote log tail.
type LogConfig struct {
	// Path of the remote log file.
	Path string `yaml:"path" mapstructure:"path"`

	// Marker is matched case-insensitively as a substring of each new line.
	Marker string `yaml:"marker" mapstructure:"marker"`

	// ResetOnTruncate rescans from the start when the file shrinks below the
	// stored offset. Off by default: a shrunk file yields no lines.
	ResetOnTruncate bool `yaml:"reset_on_truncate" mapstructure:"reset_on_truncate"`
}

// Defaults shared by DefaultConfig and the viper defaults in the loader.
const (
	DefaultLockFile     = "/tmp/hostwatch.pid"
	DefaultOutputFile   = "/tmp/hostwatch.log"
	DefaultLogPath      = "/var/log/syslog"
	DefaultMarker       = "error"
	DefaultTopN         = 5
	DefaultSSHTimeout   = 10 * time.Second
	DefaultProcessCount = "ps -e --no-headers | wc -l"
	DefaultTopMemory    = "ps -eo pid,user,%mem,rss,comm --sort=-%mem --no-headers | head -n 5"
	DefaultDiskUsage    = "df -P /"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		LockFile:   DefaultLockFile,
		OutputFile: DefaultOutputFile,
		SSH: SSHConfig{
			Timeout:               DefaultSSHTimeout,
			StrictHostKeyChecking: true,
		},
		Commands: CommandsConfig{
			ProcessCount: DefaultProcessCount,
			TopMemory:    DefaultTopMemory,
			DiskUsage:    DefaultDiskUsage,
		},
		Log: LogConfig{
			Path:   DefaultLogPath,
			Marker: DefaultMarker,
		},
		TopN: DefaultTopN,
	}
}
