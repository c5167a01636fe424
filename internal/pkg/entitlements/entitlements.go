package entitlements

import "strings"

// Status is a subscription status mirrored from the payment processor.
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
	StatusUnpaid   Status = "unpaid"
	StatusNone     Status = "none"
)

// Tier is the product plan level attached to a user.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Role is the authorization-facing field consumed by access checks. It overlaps
// with Tier but also covers guest and admin.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleFree    Role = "free"
	RolePro     Role = "pro"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

// HasProAccess reports whether a subscription status unlocks Pro content.
// Unknown or empty statuses never grant access.
func HasProAccess(status string) bool {
	switch Status(strings.ToLower(strings.TrimSpace(status))) {
	case StatusActive, StatusTrialing:
		return true
	default:
		return false
	}
}

// DisplayTier maps a role to the tier label shown in the portal.
func DisplayTier(role string) string {
	switch Role(strings.ToLower(strings.TrimSpace(role))) {
	case RolePro:
		return "Pro"
	case RolePremium:
		return "Premium"
	default:
		return "Free"
	}
}

// DeriveRoleAndTier computes the role/tier pair the sync engine writes for an
// incoming subscription status. Premium and admin are assigned out of band and
// are never produced here.
func DeriveRoleAndTier(status string) (Role, Tier) {
	if HasProAccess(status) {
		return RolePro, TierPro
	}
	return RoleFree, TierFree
}
