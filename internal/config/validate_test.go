package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "future version", mutate: func(c *Config) { c.Version = 99 }, wantErr: "from the future"},
		{name: "empty lock file", mutate: func(c *Config) { c.LockFile = "" }, wantErr: "lock_file"},
		{name: "relative output file", mutate: func(c *Config) { c.OutputFile = "out.log" }, wantErr: "absolute path"},
		{name: "same lock and output", mutate: func(c *Config) { c.OutputFile = c.LockFile }, wantErr: "same file"},
		{name: "bad port", mutate: func(c *Config) { c.SSH.Port = 70000 }, wantErr: "ssh.port"},
		{name: "zero timeout", mutate: func(c *Config) { c.SSH.Timeout = 0 }, wantErr: "ssh.timeout"},
		{name: "blank command", mutate: func(c *Config) { c.Commands.DiskUsage = "  " }, wantErr: "commands.disk_usage"},
		{name: "empty log path", mutate: func(c *Config) { c.Log.Path = "" }, wantErr: "log.path"},
		{name: "empty marker", mutate: func(c *Config) { c.Log.Marker = "" }, wantErr: "log.marker"},
		{name: "zero top_n", mutate: func(c *Config) { c.TopN = 0 }, wantErr: "top_n"},
		{name: "custom timeout ok", mutate: func(c *Config) { c.SSH.Timeout = time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
