package enums

import "fmt"

// Role is the portal role carried in access tokens.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

var validRoles = []Role{RoleClient, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
