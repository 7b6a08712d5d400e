package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	wberrors "github.com/yairfalse/wbcheck/internal/errors"
)

const bannerWidth = 60

// IsColorEnabled returns true if ANSI color codes should be emitted on f.
// It honors the --no-color setting, NO_COLOR and WBCHECK_NO_COLOR, and
// requires f to be a terminal.
func IsColorEnabled(noColor bool, f *os.File) bool {
	if noColor || wberrors.NoColorRequested() {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes the human-readable console report
type Printer struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	warning *color.Color
	heading *color.Color
	dim     *color.Color
}

// NewPrinter creates a printer; colors are forced on or off by useColor
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		heading: color.New(color.FgWhite, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}

	for _, c := range []*color.Color{p.success, p.failure, p.warning, p.heading, p.dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Rule prints a full-width separator line
func (p *Printer) Rule() {
	fmt.Fprintln(p.out, strings.Repeat("=", bannerWidth))
}

// Banner prints a boxed title with an optional timestamp line
func (p *Printer) Banner(title string, ts time.Time) {
	p.Rule()
	fmt.Fprintln(p.out, p.heading.Sprint(title))
	if !ts.IsZero() {
		fmt.Fprintf(p.out, "Timestamp: %s\n", ts.Format(time.RFC3339))
	}
	p.Rule()
}

// Closing prints the final banner preceded by a blank line
func (p *Printer) Closing(title string) {
	fmt.Fprintln(p.out)
	p.Banner(title, time.Time{})
}

// Section prints a numbered step heading
func (p *Printer) Section(step int, format string, args ...interface{}) {
	fmt.Fprintf(p.out, "\n%d. %s\n", step, p.heading.Sprintf(format, args...))
}

// Line prints an unadorned line
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a ✓ line
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.success.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Failure prints a ✗ line
func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.failure.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Warning prints a ⚠ line
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.warning.Sprint("⚠"), fmt.Sprintf(format, args...))
}

// Detail prints an indented key/value line
func (p *Printer) Detail(label string, value interface{}) {
	fmt.Fprintf(p.out, "  %s %v\n", p.dim.Sprint(label+":"), value)
}

// Sparkline prints an indented sparkline between its first and last labels
func (p *Printer) Sparkline(label string, values []float64, first, last string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(p.out, "  %s %s %s %s\n", p.dim.Sprint(label+":"), first, p.success.Sprint(Sparkline(values)), last)
}
