package models

import (
	"time"
)

type UserRole string

const (
	RoleEmployee      UserRole = "employee"
	RoleManager       UserRole = "manager"
	RoleHR            UserRole = "hr"
	RoleOfficeManager UserRole = "office_manager"
)

// IsValid reports whether the role is one of the four enumerated values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleOfficeManager:
		return true
	}
	return false
}

// ParseRole normalizes an incoming role string to the canonical enumeration.
// Legacy capitalized labels from the old frontend redirect tables are accepted
// so data written by it keeps resolving to one convention.
func ParseRole(s string) (UserRole, bool) {
	switch s {
	case "employee", "Employee", "Employé":
		return RoleEmployee, true
	case "manager", "Manager":
		return RoleManager, true
	case "hr", "rh", "HR", "RH":
		return RoleHR, true
	case "office_manager", "Office Manager":
		return RoleOfficeManager, true
	}
	return "", false
}

// Canonical landing routes, one per role. The login path doubles as the
// fallback for anything outside the enumeration.
const (
	PathLogin         = "/login"
	PathEmployee      = "/employee"
	PathCreateProfile = "/create-profile"
	PathManagerBoard  = "/dashboard-manager"
	PathHRBoard       = "/dashboard-rh"
	PathOfficeBoard   = "/dashboard-office"
)

// RouteForRole maps a role to its canonical landing route. Pure and total:
// every enumerated role has exactly one path, anything else goes to login.
func RouteForRole(role UserRole) string {
	switch role {
	case RoleEmployee:
		return PathEmployee
	case RoleManager:
		return PathManagerBoard
	case RoleHR:
		return PathHRBoard
	case RoleOfficeManager:
		return PathOfficeBoard
	default:
		return PathLogin
	}
}

// User is the authenticated actor. It is produced by the user directory on
// login and serialized as-is into the session slot; it is never mutated.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FullName  string   `json:"name,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Role      UserRole `json:"role"`

	AvatarURL *string `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// DisplayName prefers the full name and falls back to first/last or email.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.FirstName != "" || u.LastName != "" {
		if u.FirstName == "" {
			return u.LastName
		}
		if u.LastName == "" {
			return u.FirstName
		}
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}
