package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211", 500*time.Millisecond)

	if err := mc.Ping(); err != nil {
		t.Skip("Memcached is not available, skipping test")
	}

	// Set a block key
	err := mc.Set("supel_rate_limited_test", []byte("300"), time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("supel_rate_limited_test")
	assert.NoError(t, err)
	assert.Equal(t, "300", string(value))

	// The block lifts once the expiration passes
	time.Sleep(3 * time.Second)
	_, err = mc.Get("supel_rate_limited_test")
	assert.Error(t, err)
}
