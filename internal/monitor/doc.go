// Package monitor runs the poll cycles against the target host.
//
// Each cycle samples three diagnostics and tails one log file, then writes a
// plain-text report to the output stream.
//
// # Key Components
//
//	Sampler    - Runs the diagnostic commands and computes deltas
//	Tracker    - Byte-offset tail of the remote log, filtered by a marker
//	Scheduler  - Sequential cycle loop that owns CycleState
//	Report     - The lines written for one cycle
//
// # Cycle State
//
// CycleState carries the previous process count, disk percentage and log
// offset from one cycle to the next. It is the only state that survives
// between cycles. A metric that cannot be read in a cycle keeps its previous
// value so the next delta is taken against the last good sample.
//
// # Report Layout
//
//	Fri Oct 16 10:04:05 2026
//	----------------------------------------
//	Processes: 212 (+3)
//	  1234 root  12.5 204800 postgres
//	  ...
//	Disk usage: 41% (+0)
//	Oct 16 10:04:01 host kernel: I/O error on dev sda1
//	<blank line>
package monitor
