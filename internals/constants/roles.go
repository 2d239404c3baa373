package constants

import "fmt"

const (
	RoleAdmin = "admin"
)

// Authorization messages
const (
	ErrNotAdmin          = "You don't have admin access"
	ErrVerifyAdminAccess = "Error verifying admin access"
	ErrOnlyAdminsCanEdit = "Only admins can change %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanEdit, feature)
}
