package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 100

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or defaultWidth when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// progressPrinter writes "[i/n] Processing: name" lines. On a terminal each
// line overwrites the previous one and Done terminates the last.
type progressPrinter struct {
	out     io.Writer
	inPlace bool
	pending bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, inPlace: isTerminal(out)}
}

// Func returns the callback to install on the ingest service.
func (p *progressPrinter) Func() driving.ProgressFunc {
	return func(current, total int, record domain.AgencyRecord) {
		line := fmt.Sprintf("[%d/%d] Processing: %s", current, total, record.Name)
		if p.inPlace {
			fmt.Fprintf(p.out, "\r\033[K%s", line)
			p.pending = true
			return
		}
		fmt.Fprintln(p.out, line)
	}
}

// Done ends an in-place progress line.
func (p *progressPrinter) Done() {
	if p.pending {
		fmt.Fprintln(p.out)
		p.pending = false
	}
}
