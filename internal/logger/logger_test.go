package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Cleanup(resetLogger)

	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	t.Cleanup(resetLogger)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug(t *testing.T) {
	t.Run("verbose prints", func(t *testing.T) {
		buf := capture(t)
		SetVerbose(true)

		Debug("captured %s", "frag-1")

		assert.Equal(t, "[DEBUG] captured frag-1\n", buf.String())
	})

	t.Run("quiet suppresses", func(t *testing.T) {
		buf := capture(t)
		SetVerbose(false)

		Debug("captured %s", "frag-1")

		assert.Zero(t, buf.Len())
	})
}

func TestSection(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Section("Graph Assembly")

	assert.Equal(t, "\n=== Graph Assembly ===\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Info("selected %d fragments", 42)

	assert.Equal(t, "[INFO] selected 42 fragments\n", buf.String())
}

func TestWarn(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Warn("stale response dropped")

	assert.Equal(t, "[WARN] stale response dropped\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
}
