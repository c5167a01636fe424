package middleware

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntitlementCacheStale(t *testing.T) {
	now := time.Now()
	stamp := func(age time.Duration) string {
		return strconv.FormatInt(now.Add(-age).Unix(), 10)
	}

	tests := []struct {
		name     string
		cachedAt string
		want     bool
	}{
		{"fresh stamp", stamp(5 * time.Second), false},
		{"just under the window", stamp(entitlementCacheTTL - 2*time.Second), false},
		{"expired stamp", stamp(entitlementCacheTTL + time.Second), true},
		{"missing stamp", "", true},
		{"garbage stamp", "not-a-timestamp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlementCacheStale(tt.cachedAt, now))
		})
	}
}
