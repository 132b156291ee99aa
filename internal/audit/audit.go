package audit

import (
	"time"

	"github.com/aifinance/aifinance-backend/internal/localstore"
)

// Key is where the audit trail lives in the local record store.
const Key = "aifinance_audit"

// maxEntries caps the trail so the store file stays small.
const maxEntries = 500

// Entry records one auth or account event.
type Entry struct {
	At     time.Time         `json:"at"`
	UserID string            `json:"user_id,omitempty"`
	Action string            `json:"action"`
	Detail map[string]string `json:"detail,omitempty"`
}

// Write appends an entry to the trail, newest first. Failures are returned so
// callers can ignore them; auditing never blocks the operation itself.
func Write(kv *localstore.Store, e Entry) error {
	if kv == nil {
		return nil
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	var trail []Entry
	if _, err := kv.GetJSON(Key, &trail); err != nil {
		// Corrupt trail: start over rather than fail the caller.
		trail = nil
	}

	trail = append([]Entry{e}, trail...)
	if len(trail) > maxEntries {
		trail = trail[:maxEntries]
	}
	return kv.SetJSON(Key, trail)
}

// List returns the stored trail, newest first.
func List(kv *localstore.Store, limit int) ([]Entry, error) {
	var trail []Entry
	if _, err := kv.GetJSON(Key, &trail); err != nil {
		return nil, err
	}
	if limit > 0 && len(trail) > limit {
		trail = trail[:limit]
	}
	return trail, nil
}
