package models

import "fmt"

// Role is the kind of account a principal belongs to
type Role int

const (
	RoleStudent Role = iota + 1
	RoleCompany
)

// String returns the wire form stored in tokens
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleCompany:
		return "company"
	}
	return "unknown"
}

// ParseRole converts the wire form back into a Role
func ParseRole(s string) (Role, error) {
	switch s {
	case "student":
		return RoleStudent, nil
	case "company":
		return RoleCompany, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
