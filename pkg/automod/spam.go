package automod

import (
	"sync"
	"time"
)

// SpamTracker keeps a sliding window of message timestamps per user
// and guild.
type SpamTracker struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
}

// NewSpamTracker builds an empty tracker
func NewSpamTracker() *SpamTracker {
	return &SpamTracker{buckets: make(map[string][]time.Time)}
}

// Record registers one message and reports whether the user reached
// the limit within the window, counting the message just recorded.
func (t *SpamTracker) Record(guildID, userID string, at time.Time, limit int, window time.Duration) bool {
	if limit <= 0 || window <= 0 {
		return false
	}

	key := guildID + ":" + userID
	cutoff := at.Add(-window)

	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.buckets[key][:0]
	for _, ts := range t.buckets[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, at)
	t.buckets[key] = recent

	return len(recent) >= limit
}

// Sweep drops buckets whose newest entry is older than maxAge
func (t *SpamTracker) Sweep(now time.Time, maxAge time.Duration) {
	cutoff := now.Add(-maxAge)

	t.mu.Lock()
	defer t.mu.Unlock()

	for key, times := range t.buckets {
		if len(times) == 0 || times[len(times)-1].Before(cutoff) {
			delete(t.buckets, key)
		}
	}
}

// Reset clears the window of one user, used after a violation so the
// next message does not immediately trip the limit again
func (t *SpamTracker) Reset(guildID, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.buckets, guildID+":"+userID)
}
