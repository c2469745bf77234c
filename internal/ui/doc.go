// Package ui formats hostwatch's interactive CLI feedback: one styled line per
// outcome on the invoking terminal.
//
// Daemon output never goes through this package. Reports and diagnostics in
// the output file stay plain text.
//
// # Color Scheme
//
//	ColorSuccess (green)  - Started, stopped, running
//	ColorError   (red)    - Failures
//	ColorWarning (yellow) - Stale lock, not running
//	ColorMuted   (gray)   - Details such as PIDs and paths
//
// Colors are dropped when the stream is not a terminal or NO_COLOR is set.
package ui
