package auth

import "strings"

// Role is the closed set of actor roles the services consume. Anything the
// parser does not recognise collapses to RoleGuest, which holds no
// capabilities.
type Role int

const (
	RoleGuest Role = iota
	RoleVolunteer
	RoleAdmin
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "volunteer":
		return RoleVolunteer
	default:
		return RoleGuest
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleVolunteer:
		return "volunteer"
	default:
		return "guest"
	}
}

// CanManageRegistrations covers registering and cancelling students.
func (r Role) CanManageRegistrations() bool {
	return r == RoleAdmin || r == RoleVolunteer
}

// CanManageCatalog covers creating events and maintaining student records.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}
