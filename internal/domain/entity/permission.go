// Package entity contains the core business objects of the project.
package entity

// Permission represents the access level attached to an account.
type Permission string

const (
	// PermissionUser is the default level every self-registered account receives.
	PermissionUser Permission = "user"
	// PermissionModerator indicates elevated moderation rights.
	PermissionModerator Permission = "moderator"
	// PermissionAdmin indicates full administrative rights.
	PermissionAdmin Permission = "admin"
)

// String returns the string representation of the Permission.
func (p Permission) String() string {
	return string(p)
}

// IsValid checks if the Permission is a member of the closed enumeration.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionUser, PermissionModerator, PermissionAdmin:
		return true
	default:
		return false
	}
}
