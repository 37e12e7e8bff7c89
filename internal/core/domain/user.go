package domain

import "time"

// Role determines which feature set a user can navigate to.
type Role string

const (
	RoleManager Role = "manager"
	RoleOwner   Role = "owner"
	RoleTenant  Role = "tenant"

	// RoleNone marks a missing or unrecognized role. Navigation for
	// RoleNone is always the blocked (empty) state.
	RoleNone Role = ""
)

// ParseRole maps a wire value to a known Role. Anything outside the three
// recognized tags collapses to RoleNone so callers fail closed.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleManager, RoleOwner, RoleTenant:
		return Role(s)
	}
	return RoleNone
}

// Known reports whether r is one of the three recognized roles.
func (r Role) Known() bool {
	return r == RoleManager || r == RoleOwner || r == RoleTenant
}

// User is the cached account snapshot returned by the API at login. It is
// immutable client-side: only a new login or an explicit profile reload
// replaces it, and it is never validated for staleness against the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
