// Package daemon handles the hostwatch process lifecycle: detaching into the
// background, the single-instance lock file, signal-driven shutdown, and
// stopping a running instance.
//
// Go cannot fork safely, so Start re-executes the current binary with
// ChildEnv set. The child calls Serve, which creates the lock file with its
// own PID, runs the monitor until a termination signal arrives, and removes
// the lock file on the way out.
//
// The lock file is the only record of a running instance. Its presence means
// "running" and its content is the owner's decimal PID.
package daemon
