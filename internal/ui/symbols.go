package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation completed
	SymbolFail    = "✗" // Operation failed
	SymbolWarning = "!" // Needs attention
	SymbolRunning = "●" // Instance is running
	SymbolStopped = "○" // Instance is not running
)
