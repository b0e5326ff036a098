package rental

import "strings"

// IsValid checks if the role is one of the two predefined roles
func (r Role) IsValid() bool {
	switch r {
	case RoleLandlord, RoleTenant:
		return true
	default:
		return false
	}
}

// DashboardPath is where an authenticated account of this role lands
func (r Role) DashboardPath() string {
	switch r {
	case RoleLandlord:
		return "/landlord/dashboard"
	case RoleTenant:
		return "/tenant/dashboard"
	default:
		return "/"
	}
}

// LoginPath is the sign-in page for this role
func (r Role) LoginPath() string {
	switch r {
	case RoleLandlord:
		return "/landlord/login"
	case RoleTenant:
		return "/tenant/login"
	default:
		return "/login"
	}
}

// OnboardingPath is the profile-completion form for this role
func (r Role) OnboardingPath() string {
	switch r {
	case RoleLandlord:
		return "/landlord/onboarding"
	case RoleTenant:
		return "/tenant/onboarding"
	default:
		return "/"
	}
}

// GetAllRoles returns the closed role set
func GetAllRoles() []Role {
	return []Role{RoleLandlord, RoleTenant}
}

// ParseRole safely parses a string into a Role, tolerating form-input
// casing
func ParseRole(roleStr string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(roleStr)))
	return role, role.IsValid()
}

// RoleSet is the set of roles a route admits. Empty means any
// authenticated role.
type RoleSet []Role

// Contains checks role membership; an empty set admits every valid role
func (rs RoleSet) Contains(role Role) bool {
	if len(rs) == 0 {
		return role.IsValid()
	}
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Single returns the only member when the set names exactly one role
func (rs RoleSet) Single() (Role, bool) {
	if len(rs) == 1 {
		return rs[0], true
	}
	return "", false
}

// LoginPath picks the role-appropriate sign-in page for the set
func (rs RoleSet) LoginPath() string {
	if role, ok := rs.Single(); ok {
		return role.LoginPath()
	}
	return "/login"
}
