package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// clearLine returns the cursor to column 0 and erases the line
const clearLine = "\r\033[K"

// HideCursor hides the terminal cursor
func HideCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor
func ShowCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h")
}

// SignalContext returns a context that is cancelled on interrupt or SIGTERM
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Status is a transient single-line message on a terminal, replaced in place
// and erased before the final output is written.
type Status struct {
	w      io.Writer
	active bool
}

// NewStatus creates a status line writing to w
func NewStatus(w io.Writer) *Status {
	return &Status{w: w}
}

// Show replaces the status line with line
func (s *Status) Show(line string) {
	if !s.active {
		HideCursor(s.w)
		s.active = true
	}
	_, _ = fmt.Fprint(s.w, clearLine+line)
}

// Clear erases the status line. It is a no-op if nothing is shown.
func (s *Status) Clear() {
	if !s.active {
		return
	}
	_, _ = fmt.Fprint(s.w, clearLine)
	ShowCursor(s.w)
	s.active = false
}
