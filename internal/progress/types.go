// Package progress provides terminal capability detection and an
// assembly spinner for interactive relpatch runs.
package progress

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set used for run output, selected to match
// the terminal's capabilities.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}
