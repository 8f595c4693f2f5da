package reembed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Update(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()
	assert.True(t, tracker.started)

	tracker.Update(50)
	assert.Empty(t, buf.String(), "below the report interval")

	tracker.Update(250)
	assert.Contains(t, buf.String(), "250/1000")
	assert.Contains(t, buf.String(), "25.0%")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "100.0%")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0")
	assert.NotContains(t, buf.String(), "NaN")
}

func TestProgressTracker_UpdateBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(150)

	assert.Contains(t, buf.String(), "100/100")
	assert.Equal(t, 100, tracker.current)
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Update(50)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_Elapsed(t *testing.T) {
	tracker := NewProgressTracker(&bytes.Buffer{}, 10, 1)
	tracker.Start()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, tracker.Elapsed(), 5*time.Millisecond)
}
