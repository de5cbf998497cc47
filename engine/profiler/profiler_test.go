package profiler

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	clock := time.Unix(0, 0)
	p := NewProfiler()
	p.now = func() time.Time { return clock }
	p.lastTime = clock
	p.SetInterval(time.Second)
	p.SetDescriber(func() string { return "particles: 15625 | shape: torus" })

	for range 49 {
		clock = clock.Add(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = clock.Add(20 * time.Millisecond)
	assert.True(t, p.Tick())

	out := buf.String()
	assert.Contains(t, out, "[Profiler] FPS: 50.00")
	assert.Contains(t, out, "shape: torus")

	assert.False(t, p.Tick(), "counter resets after a report")
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
