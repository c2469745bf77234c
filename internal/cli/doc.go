// Package cli implements the hostwatch command-line interface.
//
// # Command Structure
//
//	hostwatch <ipv4> <interval> start   - Detach and monitor in the background
//	hostwatch <ipv4> <interval> stop    - Send SIGTERM to the running instance
//	hostwatch <ipv4> <interval> status  - Report whether an instance is running
//	hostwatch <ipv4> <interval> run     - Monitor in the foreground
//	hostwatch config                    - Print the effective configuration
//	hostwatch version                   - Print build information
//
// The address and interval are validated for every mode, before any lock file
// or remote connection is touched.
//
// # Exit Codes
//
// Bad arguments and config errors exit 2 and print usage. Everything else
// exits 1.
//
// # Background Mode
//
// start re-executes hostwatch with the same arguments and daemon.ChildEnv
// set. The child sees the env var, takes the lock, and runs the scheduler with
// stdout and stderr appended to the output file.
package cli
