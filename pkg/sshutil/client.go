package sshutil

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Client wraps an SSH connection with additional metadata.
type Client struct {
	*ssh.Client
	Host    string // The original host used to connect
	Address string // The resolved address (host:port)
}

// Options controls how Dial resolves and authenticates a connection.
// Zero values fall back to ~/.ssh/config and then to built-in defaults.
type Options struct {
	// User overrides the login user from ssh_config and $USER.
	User string

	// Port overrides the port from ssh_config. Zero means "use config or 22".
	Port int

	// IdentityFile is tried before the default key files.
	IdentityFile string

	// Timeout bounds the TCP dial and the SSH handshake.
	Timeout time.Duration

	// StrictHostKeyChecking verifies host keys against KnownHostsPath.
	// When false, host key verification is skipped (insecure).
	StrictHostKeyChecking bool

	// ConfigPath is the ssh_config file. Empty means ~/.ssh/config.
	ConfigPath string

	// KnownHostsPath is the known_hosts file. Empty means ~/.ssh/known_hosts.
	KnownHostsPath string

	// Warn receives non-fatal warnings. Nil discards them.
	Warn func(message string)
}

func (o Options) warn(message string) {
	if o.Warn != nil {
		o.Warn(message)
	}
}

func (o Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return filepath.Join(homeDir(), ".ssh", "config")
}

func (o Options) knownHostsPath() string {
	if o.KnownHostsPath != "" {
		return o.KnownHostsPath
	}
	return filepath.Join(homeDir(), ".ssh", "known_hosts")
}

// Dial establishes an SSH connection to the specified host.
// The host can be a bare address (e.g., "192.168.1.100"), user@address, or
// address:port. Settings are layered: defaults, then ~/.ssh/config, then opts.
func Dial(host string, opts Options) (*Client, error) {
	settings := resolveSSHSettings(host, opts)

	config, err := buildSSHConfig(settings, opts)
	if err != nil {
		var hwErr *errors.Error
		if stderrors.As(err, &hwErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", host),
			"Check your keys are loaded: ssh-add -l")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	address := settings.address()
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", host, address),
			suggestionForDialError(err))
	}

	// Bound the handshake the same way as the dial.
	_ = conn.SetDeadline(time.Now().Add(timeout))
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		var hostKeyErr *HostKeyMismatchError
		if stderrors.As(err, &hostKeyErr) {
			return nil, errors.New(errors.ErrSSH,
				hostKeyErr.Error(),
				hostKeyErr.Suggestion())
		}

		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			suggestionForHandshakeError(err, settings.encryptedKeys))
	}
	_ = conn.SetDeadline(time.Time{})

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    host,
		Address: address,
	}, nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// GetHost returns the original host used to connect.
func (c *Client) GetHost() string {
	return c.Host
}

// GetAddress returns the resolved host:port address.
func (c *Client) GetAddress() string {
	return c.Address
}

// sshSettings holds resolved SSH connection parameters.
type sshSettings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string // Keys that exist but are encrypted
}

// address returns the host:port string for dialing.
func (s *sshSettings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSSHSettings parses the host string and layers ssh_config and opts on top.
func resolveSSHSettings(host string, opts Options) *sshSettings {
	settings := &sshSettings{
		port: "22",
		user: currentUser(),
	}

	explicitUser := ""
	if atIdx := strings.Index(host, "@"); atIdx != -1 {
		explicitUser = host[:atIdx]
		host = host[atIdx+1:]
	}

	explicitPort := ""
	if colonIdx := strings.LastIndex(host, ":"); colonIdx != -1 {
		potentialPort := host[colonIdx+1:]
		if _, err := strconv.Atoi(potentialPort); err == nil && potentialPort != "" {
			explicitPort = potentialPort
			host = host[:colonIdx]
		}
	}

	settings.hostname = host

	if cfg, err := loadSSHConfig(opts.configPath(), opts.warn); err == nil {
		entry := cfg.lookup(host)
		if entry.Hostname != "" {
			settings.hostname = entry.Hostname
		}
		if entry.Port != "" {
			settings.port = entry.Port
		}
		if entry.User != "" {
			settings.user = entry.User
		}
		if entry.IdentityFile != "" {
			settings.identityFile = entry.IdentityFile
		}
	}

	// Explicit values win over anything from ssh_config.
	if explicitUser != "" {
		settings.user = explicitUser
	}
	if explicitPort != "" {
		settings.port = explicitPort
	}
	if opts.User != "" {
		settings.user = opts.User
	}
	if opts.Port > 0 {
		settings.port = strconv.Itoa(opts.Port)
	}
	if opts.IdentityFile != "" {
		settings.identityFile = expandPath(opts.IdentityFile)
	}

	return settings
}

// buildSSHConfig creates an SSH client config with authentication methods.
// It also populates settings.encryptedKeys with any keys that exist but are encrypted.
func buildSSHConfig(settings *sshSettings, opts Options) (*ssh.ClientConfig, error) {
	var authMethods []ssh.AuthMethod

	tryKeyFile := func(keyPath string) {
		keyAuth, err := keyFileAuth(keyPath)
		if err != nil {
			var encErr *EncryptedKeyError
			if stderrors.As(err, &encErr) {
				settings.encryptedKeys = append(settings.encryptedKeys, keyPath)
			}
			return
		}
		authMethods = append(authMethods, keyAuth)
	}

	if agentAuth := sshAgentAuth(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	if settings.identityFile != "" {
		tryKeyFile(settings.identityFile)
	}

	for _, keyPath := range defaultKeyFiles() {
		if keyPath == settings.identityFile {
			continue
		}
		tryKeyFile(keyPath)
	}

	if len(authMethods) == 0 {
		msg := "No SSH auth methods available"
		suggestion := "Check your keys are loaded: ssh-add -l"

		if len(settings.encryptedKeys) > 0 {
			msg = fmt.Sprintf("Found SSH key(s) but they're encrypted: %s", strings.Join(settings.encryptedKeys, ", "))
			suggestion = addKeysSuggestion("Add your key(s) to the agent:", settings.encryptedKeys)
		}

		return nil, errors.New(errors.ErrSSH, msg, suggestion)
	}

	var hostKeyCallback ssh.HostKeyCallback
	if opts.StrictHostKeyChecking {
		var err error
		hostKeyCallback, err = createHostKeyCallback(opts.knownHostsPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load known_hosts: %w", err)
		}
	} else {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // User explicitly disabled host key checking
	}

	return &ssh.ClientConfig{
		User:            settings.user,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         opts.Timeout,
	}, nil
}

// The agent connection is shared by every Dial in the process. The daemon
// redials after transport failures, so this avoids leaking a socket per retry.
var (
	agentMu     sync.Mutex
	agentConn   net.Conn
	agentClient agent.ExtendedAgent
)

// sshAgentAuth returns an auth method using the SSH agent if available.
// Returns nil if the agent has no keys loaded.
func sshAgentAuth() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	client := sharedAgent(socket)
	if client == nil {
		return nil
	}

	// An empty agent causes auth failures when placed before other methods.
	signers, err := client.Signers()
	if err != nil || len(signers) == 0 {
		return nil
	}

	return ssh.PublicKeysCallback(client.Signers)
}

// sharedAgent returns the open agent client, connecting to socket if there is none.
func sharedAgent(socket string) agent.ExtendedAgent {
	agentMu.Lock()
	defer agentMu.Unlock()

	if agentClient != nil {
		return agentClient
	}
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}
	agentConn = conn
	agentClient = agent.NewClient(conn)
	return agentClient
}

// CloseAgent closes the SSH agent connection if one is open. The next Dial
// reconnects.
func CloseAgent() {
	agentMu.Lock()
	defer agentMu.Unlock()

	if agentConn != nil {
		agentConn.Close()
	}
	agentConn = nil
	agentClient = nil
}

// keyFileAuth returns an auth method using a private key file.
// Returns EncryptedKeyError if the key requires a passphrase.
func keyFileAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) || isEncryptedPEM(key) {
			return nil, &EncryptedKeyError{Path: keyPath}
		}
		return nil, err
	}

	return ssh.PublicKeys(signer), nil
}

func defaultKeyFiles() []string {
	return []string{
		filepath.Join(homeDir(), ".ssh", "id_ed25519"),
		filepath.Join(homeDir(), ".ssh", "id_rsa"),
		filepath.Join(homeDir(), ".ssh", "id_ecdsa"),
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func addKeysSuggestion(header string, keys []string) string {
	var sb strings.Builder
	sb.WriteString(header + "\n")
	for _, key := range keys {
		if runtime.GOOS == "darwin" {
			sb.WriteString(fmt.Sprintf("  ssh-add --apple-use-keychain %s\n", key))
		} else {
			sb.WriteString(fmt.Sprintf("  ssh-add %s\n", key))
		}
	}
	sb.WriteString("\nNot sure which key? Check with: ssh -v <host>")
	return sb.String()
}

func suggestionForDialError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") {
		return "Is SSH running on that box? Try: ssh <host>"
	}
	if strings.Contains(errStr, "no route to host") || strings.Contains(errStr, "network is unreachable") {
		return "Can't route to the host. Check your network connection."
	}
	if strings.Contains(errStr, "timeout") {
		return "Connection timed out. Host might be offline or blocked by a firewall."
	}
	return "Make sure the host is reachable: ping <host>"
}

func suggestionForHandshakeError(err error, encryptedKeys []string) string {
	errStr := err.Error()
	if strings.Contains(errStr, "unable to authenticate") || strings.Contains(errStr, "no supported methods") {
		if len(encryptedKeys) > 0 {
			return addKeysSuggestion("Your key(s) are encrypted. Add them to the agent:", encryptedKeys)
		}
		return "Auth failed. Check your keys are loaded: ssh-add -l"
	}
	if strings.Contains(errStr, "host key") {
		return "Host key issue. Try connecting manually first: ssh <host>"
	}
	return "Something went wrong during SSH setup. Try: ssh <host>"
}

// EncryptedKeyError is returned when an SSH key requires a passphrase.
type EncryptedKeyError struct {
	Path string
}

func (e *EncryptedKeyError) Error() string {
	return fmt.Sprintf("SSH key at %s is encrypted (passphrase protected)", e.Path)
}

// HostKeyMismatchError provides helpful context when known_hosts verification fails.
type HostKeyMismatchError struct {
	Hostname     string
	ReceivedType string
	KnownHosts   string
	Want         []knownhosts.KnownKey
}

func (e *HostKeyMismatchError) Error() string {
	return fmt.Sprintf("host key mismatch for %s: server sent %s key", e.Hostname, e.ReceivedType)
}

// Suggestion returns actionable steps to fix the host key mismatch.
func (e *HostKeyMismatchError) Suggestion() string {
	host := e.Hostname
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	var wantTypes []string
	for _, k := range e.Want {
		wantTypes = append(wantTypes, k.Key.Type())
	}
	wantStr := "unknown"
	if len(wantTypes) > 0 {
		wantStr = strings.Join(wantTypes, ", ")
	}

	return fmt.Sprintf(
		"The server's host key doesn't match what's in known_hosts.\n"+
			"  Known types: %s\n"+
			"  Server sent: %s\n\n"+
			"  To refresh the entry:\n"+
			"    ssh-keygen -R %s && ssh-keyscan %s >> %s",
		wantStr, e.ReceivedType, host, host, e.KnownHosts)
}

// isEncryptedPEM checks if PEM data contains encryption markers.
func isEncryptedPEM(data []byte) bool {
	return bytes.Contains(data, []byte("ENCRYPTED"))
}

// createHostKeyCallback wraps the knownhosts callback to provide better error messages.
func createHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(knownHostsPath), 0700); err != nil {
			return nil, fmt.Errorf("failed to create .ssh directory: %w", err)
		}
		if err := os.WriteFile(knownHostsPath, []byte{}, 0600); err != nil {
			return nil, fmt.Errorf("failed to create known_hosts: %w", err)
		}
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := callback(hostname, remote, key)
		if err != nil {
			var keyErr *knownhosts.KeyError
			if stderrors.As(err, &keyErr) && len(keyErr.Want) > 0 {
				return &HostKeyMismatchError{
					Hostname:     hostname,
					ReceivedType: key.Type(),
					KnownHosts:   knownHostsPath,
					Want:         keyErr.Want,
				}
			}
		}
		return err
	}, nil
}
