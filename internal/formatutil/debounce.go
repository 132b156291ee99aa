package formatutil

import (
	"sync"
	"time"
)

// Debounce wraps fn so that it only runs after calls have stopped for wait.
// Trailing edge only: every call resets the timer, the last call wins.
func Debounce(wait time.Duration, fn func()) func() {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}
