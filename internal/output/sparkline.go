package output

import (
	"os"

	"golang.org/x/term"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a row of block characters scaled between the
// series minimum and maximum. A flat series renders at the lowest tick.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]rune, len(values))
	span := hi - lo
	top := float64(len(sparkTicks) - 1)
	for i, v := range values {
		if span == 0 {
			out[i] = sparkTicks[0]
			continue
		}
		idx := int((v-lo)/span*top + 0.5)
		if idx < 0 || idx >= len(sparkTicks) {
			idx = 0
		}
		out[i] = sparkTicks[idx]
	}
	return string(out)
}

// Tail keeps at most the last n values
func Tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal
func TerminalWidth(fallback int) int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallback
}
