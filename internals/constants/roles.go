package constants

import "fmt"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
	ErrOnlyUsersCanAccess  = "❌ Only candidates may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorUser(feature string) string {
	return fmt.Sprintf(ErrOnlyUsersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AdminOnly = []string{RoleAdmin}
	UserOnly  = []string{RoleUser}
)
