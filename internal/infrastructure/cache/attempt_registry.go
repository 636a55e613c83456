package cache

import (
	"sync"
	"time"
)

// registryEntry records the newest device code seen for one credential.
type registryEntry struct {
	deviceCode string
	expiresAt  time.Time
}

// AttemptRegistry is a thread-safe in-memory map from credential key to the
// most recent device code, with TTL. Implements domain.AttemptRegistry.
// Only the supersede link policy consults it; under the independent policy
// the gateway stays fully stateless.
type AttemptRegistry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	ttl     time.Duration
}

// NewAttemptRegistry creates a registry whose entries live for ttl.
func NewAttemptRegistry(ttl time.Duration) *AttemptRegistry {
	r := &AttemptRegistry{
		entries: make(map[string]*registryEntry),
		ttl:     ttl,
	}
	go r.cleanupLoop()
	return r
}

// Record stores deviceCode as the latest attempt for the credential key,
// displacing any earlier one.
func (r *AttemptRegistry) Record(credentialKey, deviceCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[credentialKey] = &registryEntry{
		deviceCode: deviceCode,
		expiresAt:  time.Now().Add(r.ttl),
	}
}

// Latest returns the newest device code for the credential key.
func (r *AttemptRegistry) Latest(credentialKey string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, found := r.entries[credentialKey]
	if !found || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.deviceCode, true
}

// Flush drops all entries.
func (r *AttemptRegistry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*registryEntry)
}

// cleanup removes expired entries.
func (r *AttemptRegistry) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, key)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (r *AttemptRegistry) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.cleanup()
	}
}
