//go:build unix

package filesystem

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafePermissionsFifoNoWriter(t *testing.T) {
	fifo := mkfifo(t)

	p := testProvider(t, nil)
	// The validation open must not block waiting for a writer.
	done := make(chan bool, 1)
	go func() {
		done <- p.SafePermissions(filepath.Dir(fifo), fifo, false)
	}()

	select {
	case safe := <-done:
		assert.True(t, safe)
	case <-time.After(5 * time.Second):
		t.Fatal("validating a fifo with no writer did not return")
	}
}
