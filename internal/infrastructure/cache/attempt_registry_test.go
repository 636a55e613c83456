package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptRegistry_RecordAndLatest(t *testing.T) {
	registry := NewAttemptRegistry(time.Minute)

	registry.Record("key-a", "code-1")

	code, found := registry.Latest("key-a")
	assert.True(t, found)
	assert.Equal(t, "code-1", code)
}

func TestAttemptRegistry_RecordDisplacesEarlier(t *testing.T) {
	registry := NewAttemptRegistry(time.Minute)

	registry.Record("key-a", "code-1")
	registry.Record("key-a", "code-2")

	code, found := registry.Latest("key-a")
	assert.True(t, found)
	assert.Equal(t, "code-2", code)
}

func TestAttemptRegistry_UnknownKey(t *testing.T) {
	registry := NewAttemptRegistry(time.Minute)

	_, found := registry.Latest("nope")
	assert.False(t, found)
}

func TestAttemptRegistry_Expiry(t *testing.T) {
	registry := NewAttemptRegistry(10 * time.Millisecond)

	registry.Record("key-a", "code-1")
	time.Sleep(20 * time.Millisecond)

	_, found := registry.Latest("key-a")
	assert.False(t, found)
}

func TestAttemptRegistry_KeysAreIndependent(t *testing.T) {
	registry := NewAttemptRegistry(time.Minute)

	registry.Record("key-a", "code-1")
	registry.Record("key-b", "code-2")

	code, _ := registry.Latest("key-a")
	assert.Equal(t, "code-1", code)
	code, _ = registry.Latest("key-b")
	assert.Equal(t, "code-2", code)
}

func TestAttemptRegistry_Flush(t *testing.T) {
	registry := NewAttemptRegistry(time.Minute)

	registry.Record("key-a", "code-1")
	registry.Record("key-b", "code-2")
	registry.Flush()

	_, found := registry.Latest("key-a")
	assert.False(t, found)
	_, found = registry.Latest("key-b")
	assert.False(t, found)
}

func TestAttemptRegistry_Cleanup(t *testing.T) {
	registry := NewAttemptRegistry(10 * time.Millisecond)

	registry.Record("key-a", "code-1")
	time.Sleep(20 * time.Millisecond)
	registry.cleanup()

	registry.mu.RLock()
	defer registry.mu.RUnlock()
	assert.Empty(t, registry.entries)
}
