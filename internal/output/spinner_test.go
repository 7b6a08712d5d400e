package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_RendersAndClears(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, true, false)
	s.interval = time.Millisecond

	s.Start("Querying sparkline")
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "⠋ Querying sparkline")
	assert.True(t, strings.HasSuffix(out, "\r"), "line should be cleared")

	// stopping twice is harmless
	s.Stop()
}

func TestSpinner_Restart(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, true, false)
	s.interval = time.Millisecond

	s.Start("first")
	s.Stop()
	s.Start("second")
	s.Stop()

	assert.Contains(t, buf.String(), "second")
}

func TestSpinner_Disabled(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, false, false)

	s.Start("Querying")
	s.Stop()

	assert.Empty(t, buf.String())
}

func TestSpinnerEnabled_NonFile(t *testing.T) {
	assert.False(t, SpinnerEnabled(&bytes.Buffer{}))
}
