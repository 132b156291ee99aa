package formatutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce_TrailingEdge(t *testing.T) {
	var calls atomic.Int32
	debounced := Debounce(30*time.Millisecond, func() {
		calls.Add(1)
	})

	// Burst of calls collapses into a single trailing invocation.
	debounced()
	debounced()
	debounced()

	assert.Equal(t, int32(0), calls.Load())

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// A later burst fires again.
	debounced()
	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}
