package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasProAccess(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: "active", want: true},
		{status: "trialing", want: true},
		{status: "past_due", want: false},
		{status: "canceled", want: false},
		{status: "unpaid", want: false},
		{status: "none", want: false},
		{status: "", want: false},
		{status: "something_else", want: false},
		{status: " ACTIVE ", want: true},
	}

	for _, tt := range tests {
		if got := HasProAccess(tt.status); got != tt.want {
			t.Fatalf("HasProAccess(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDisplayTier(t *testing.T) {
	assert.Equal(t, "Pro", DisplayTier("pro"))
	assert.Equal(t, "Premium", DisplayTier("premium"))
	assert.Equal(t, "Free", DisplayTier("free"))
	assert.Equal(t, "Free", DisplayTier("guest"))
	assert.Equal(t, "Free", DisplayTier("admin"))
	assert.Equal(t, "Free", DisplayTier(""))
}

func TestDeriveRoleAndTier(t *testing.T) {
	role, tier := DeriveRoleAndTier("active")
	assert.Equal(t, RolePro, role)
	assert.Equal(t, TierPro, tier)

	role, tier = DeriveRoleAndTier("trialing")
	assert.Equal(t, RolePro, role)
	assert.Equal(t, TierPro, tier)

	for _, status := range []string{"past_due", "canceled", "unpaid", "none", "bogus"} {
		role, tier = DeriveRoleAndTier(status)
		assert.Equal(t, RoleFree, role, "status %q", status)
		assert.Equal(t, TierFree, tier, "status %q", status)
	}
}
