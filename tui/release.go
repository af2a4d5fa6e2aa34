package tui

import (
	"sort"
	"strings"
	"time"
)

// releaseTracker turns a terminal's press-only key stream into presses,
// repeats and releases. A key counts as held while its auto-repeat keeps
// arriving; once nothing arrives for grace it is released.
type releaseTracker struct {
	grace time.Duration
	held  map[string]time.Time
}

func newReleaseTracker(grace time.Duration) *releaseTracker {
	return &releaseTracker{
		grace: grace,
		held:  make(map[string]time.Time),
	}
}

// press records key at now and reports whether it is an auto-repeat.
func (r *releaseTracker) press(key string, now time.Time) (repeat bool) {
	key = strings.ToLower(key)
	_, repeat = r.held[key]
	r.held[key] = now
	return repeat
}

// expired removes and returns the keys not seen within grace of now.
func (r *releaseTracker) expired(now time.Time) []string {
	var keys []string
	for k, seen := range r.held {
		if now.Sub(seen) > r.grace {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		delete(r.held, k)
	}
	sort.Strings(keys)
	return keys
}

// releaseAll empties the tracker.
func (r *releaseTracker) releaseAll() []string {
	keys := make([]string, 0, len(r.held))
	for k := range r.held {
		keys = append(keys, k)
	}
	r.held = make(map[string]time.Time)
	sort.Strings(keys)
	return keys
}
