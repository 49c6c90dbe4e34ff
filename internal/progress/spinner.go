package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Runner shows a spinner while assembly work is in flight. On terminals
// without TTY support it degrades to plain status lines so CI logs stay
// readable.
type Runner struct {
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	spin    *spinner.Spinner
}

// NewRunner creates a Runner writing to out with the given capabilities.
func NewRunner(caps TerminalCapabilities, out io.Writer) *Runner {
	return &Runner{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// Start begins showing progress with the given message.
func (r *Runner) Start(message string) {
	if !r.caps.IsTTY {
		fmt.Fprintf(r.out, "%s...\n", message)
		return
	}

	r.spin = spinner.New(spinner.CharSets[r.symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(r.out))
	r.spin.Suffix = " " + message
	r.spin.Start()
}

// Succeed stops the spinner and prints a success line.
func (r *Runner) Succeed(message string) {
	r.stop()
	fmt.Fprintf(r.out, "%s %s\n", r.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (r *Runner) Fail(message string) {
	r.stop()
	fmt.Fprintf(r.out, "%s %s\n", r.symbols.Failure, message)
}

// Stop halts the spinner without a status line.
func (r *Runner) Stop() {
	r.stop()
}

func (r *Runner) stop() {
	if r.spin != nil {
		r.spin.Stop()
		r.spin = nil
	}
}
