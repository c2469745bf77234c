package monitor

// CycleState is the baseline carried from one cycle to the next.
// The zero value is the baseline before the first cycle.
type CycleState struct {
	// ProcCount is the last successfully parsed process count.
	ProcCount int

	// DiskPercent is the last successfully parsed disk usage percentage.
	DiskPercent int

	// LogOffset is the byte position in the remote log up to which lines
	// have already been scanned. It never decreases.
	LogOffset int64
}
