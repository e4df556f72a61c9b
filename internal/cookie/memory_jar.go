// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package cookie

import (
	"sort"
	"sync"
	"time"
)

// memoryEntry is a stored cookie with its expiration.
// A zero ExpiresAt never expires.
type memoryEntry struct {
	Value     string
	ExpiresAt time.Time
}

// MemoryJar is a thread-safe in-memory cookie jar with per-cookie expiry.
//
// Expired entries are removed lazily on Get, the way a browser drops a
// cookie once its max-age has passed.
//
// Example:
//
//	jar := cookie.NewMemoryJar()
//	_ = jar.Set("_ch", `{"token":"t"}`, cookie.Options{MaxAge: time.Hour})
type MemoryJar struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryJar creates an empty jar using the wall clock.
func NewMemoryJar() *MemoryJar {
	return NewMemoryJarWithClock(time.Now)
}

// NewMemoryJarWithClock creates an empty jar that reads time from now.
func NewMemoryJarWithClock(now func() time.Time) *MemoryJar {
	return &MemoryJar{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Get returns the value of name if present and not expired.
func (j *MemoryJar) Get(name string) (string, bool, error) {
	j.mu.RLock()
	entry, exists := j.entries[name]
	j.mu.RUnlock()

	if !exists {
		return "", false, nil
	}

	if !entry.ExpiresAt.IsZero() && !j.now().Before(entry.ExpiresAt) {
		j.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := j.entries[name]; ok && cur.ExpiresAt.Equal(entry.ExpiresAt) {
			delete(j.entries, name)
		}
		j.mu.Unlock()
		return "", false, nil
	}

	return entry.Value, true, nil
}

// Set stores value under name, replacing any previous value.
func (j *MemoryJar) Set(name, value string, opts Options) error {
	entry := memoryEntry{Value: value}
	if opts.MaxAge > 0 {
		entry.ExpiresAt = j.now().Add(opts.MaxAge)
	}

	j.mu.Lock()
	j.entries[name] = entry
	j.mu.Unlock()
	return nil
}

// Delete removes name.
func (j *MemoryJar) Delete(name string, _ Options) error {
	j.mu.Lock()
	delete(j.entries, name)
	j.mu.Unlock()
	return nil
}

// Names returns the stored cookie names in sorted order, including entries
// that have expired but not yet been read.
func (j *MemoryJar) Names() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	names := make([]string, 0, len(j.entries))
	for name := range j.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
