package models

import "fmt"

// UserType is the closed set of marketplace account variants.
type UserType string

const (
	UserTypeClient    UserType = "client"
	UserTypeMechanic  UserType = "mechanic"
	UserTypeAdmin     UserType = "admin"
	UserTypeAutoParts UserType = "autoparts"
)

// ParseUserType resolves the user_type claim into a variant.
func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeClient, UserTypeMechanic, UserTypeAdmin, UserTypeAutoParts:
		return UserType(s), nil
	case "":
		// Accounts created before user types existed are clients.
		return UserTypeClient, nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}
