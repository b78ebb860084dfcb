// Package notification defines the best-effort mismatch reporting contract.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mismatch describes a cross-check deviation beyond the configured limit.
type Mismatch struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	CheckedBy string  `json:"checkedBy"`
	Deviation float64 `json:"deviation"`
	Limit     float64 `json:"limit"`
}

func (m Mismatch) Message() string {
	return fmt.Sprintf("%s to %s has %.2f%% price mismatch on %s (limit is %.2f%%)",
		m.Source, m.Target, m.Deviation*100, m.CheckedBy, m.Limit*100)
}

// Notifier delivers mismatch reports. Delivery is best-effort and
// fire-and-forget; callers only log failures.
type Notifier interface {
	ReportMismatch(ctx context.Context, mismatch Mismatch) error
}

// Debouncer suppresses repeated reports for the same correlation key
// within a window. It is the caller-side rate limit required by the
// notification contract.
type Debouncer struct {
	window time.Duration
	seen   map[string]time.Time
	mu     sync.Mutex
}

// NewDebouncer creates a debouncer with the given suppression window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window, seen: make(map[string]time.Time)}
}

// Allow reports whether a notification for the key may be sent now and
// records the attempt when it is allowed.
func (d *Debouncer) Allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[key] = now
	return true
}
