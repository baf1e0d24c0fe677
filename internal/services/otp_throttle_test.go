package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketThrottle_BurstThenDeny(t *testing.T) {
	th := NewTokenBucketThrottle(0.001, 2)

	assert.True(t, th.Allow("ana@example.com"))
	assert.True(t, th.Allow("ana@example.com"))
	assert.False(t, th.Allow("ana@example.com"), "burst exhausted")

	// Buckets are per email.
	assert.True(t, th.Allow("bia@example.com"))
}

func TestTokenBucketThrottle_BurstCoercion(t *testing.T) {
	th := NewTokenBucketThrottle(0.001, 0)
	assert.True(t, th.Allow("ana@example.com"))
	assert.False(t, th.Allow("ana@example.com"))
}
