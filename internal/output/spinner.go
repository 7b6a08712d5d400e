package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows a spinning indicator on one terminal line while a request runs.
// A disabled spinner is a no-op.
type Spinner struct {
	mu       sync.Mutex
	writer   io.Writer
	title    string
	index    int
	interval time.Duration
	enabled  bool
	active   bool
	done     chan struct{}
	stopped  chan struct{}
	accent   *color.Color
}

// NewSpinner creates a spinner writing to w
func NewSpinner(w io.Writer, enabled, useColor bool) *Spinner {
	accent := color.New(color.FgCyan)
	if useColor {
		accent.EnableColor()
	} else {
		accent.DisableColor()
	}

	return &Spinner{
		writer:   w,
		interval: 100 * time.Millisecond,
		enabled:  enabled,
		accent:   accent,
	}
}

// SpinnerEnabled reports whether w is an interactive terminal
func SpinnerEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start shows title next to the spinner until Stop is called
func (s *Spinner) Start(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.active {
		return
	}

	s.title = title
	s.active = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.loop(s.done, s.stopped)
}

// Stop clears the spinner line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	done, stopped := s.done, s.stopped
	width := len([]rune(s.title)) + 2
	s.mu.Unlock()

	// the render loop takes mu, so it must be waited on unlocked
	close(done)
	<-stopped

	fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", width))
}

func (s *Spinner) loop(done, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-ticker.C:
			s.render()
		case <-done:
			return
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := spinnerFrames[s.index]
	s.index = (s.index + 1) % len(spinnerFrames)

	fmt.Fprintf(s.writer, "\r%s %s", s.accent.Sprint(frame), s.title)
}
