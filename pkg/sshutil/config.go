package sshutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostEntry holds the ssh_config values hostwatch cares about for one host.
type HostEntry struct {
	Hostname     string
	User         string
	Port         string
	IdentityFile string
}

// sshConfig is a decoded ssh_config file.
type sshConfig struct {
	cfg *ssh_config.Config

	// matchLine is the 1-indexed line of the first Match directive, or 0.
	matchLine int
	warn      func(string)
}

// loadSSHConfig reads and decodes an ssh_config file.
// Match blocks are not understood by the decoder, so everything from the first
// Match directive onward is dropped before decoding.
func loadSSHConfig(path string, warn func(string)) (*sshConfig, error) {
	content, matchLine, err := preprocessSSHConfig(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	return &sshConfig{cfg: cfg, matchLine: matchLine, warn: warn}, nil
}

// LookupHost returns the ssh_config entry that applies to host in the file at path.
func LookupHost(path, host string) (HostEntry, error) {
	cfg, err := loadSSHConfig(path, nil)
	if err != nil {
		if os.IsNotExist(err) {
			return HostEntry{}, nil
		}
		return HostEntry{}, err
	}
	return cfg.lookup(host), nil
}

func (c *sshConfig) lookup(host string) HostEntry {
	var entry HostEntry
	entry.Hostname, _ = c.cfg.Get(host, "HostName")
	entry.Port, _ = c.cfg.Get(host, "Port")
	entry.User, _ = c.cfg.Get(host, "User")
	if identity, _ := c.cfg.Get(host, "IdentityFile"); identity != "" {
		entry.IdentityFile = expandPath(identity)
	}

	if c.matchLine > 0 && entry == (HostEntry{}) && c.warn != nil {
		c.warn(fmt.Sprintf(
			"Host '%s' not found in SSH config (config has a Match block at line %d that may hide later entries)",
			host, c.matchLine))
	}

	return entry
}

// preprocessSSHConfig reads the SSH config and returns content up to the first Match directive.
// Also returns the line number where Match was found (0 if not found).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}
