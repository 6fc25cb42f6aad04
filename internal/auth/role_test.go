package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-attendance/internal/auth"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, auth.RoleAdmin, auth.ParseRole("admin"))
	assert.Equal(t, auth.RoleAdmin, auth.ParseRole(" ADMIN "))
	assert.Equal(t, auth.RoleVolunteer, auth.ParseRole("volunteer"))

	// Unknown strings collapse to guest, never to an elevated role.
	assert.Equal(t, auth.RoleGuest, auth.ParseRole(""))
	assert.Equal(t, auth.RoleGuest, auth.ParseRole("superuser"))
	assert.Equal(t, auth.RoleGuest, auth.ParseRole("root"))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, auth.RoleAdmin.CanManageRegistrations())
	assert.True(t, auth.RoleAdmin.CanManageCatalog())

	assert.True(t, auth.RoleVolunteer.CanManageRegistrations())
	assert.False(t, auth.RoleVolunteer.CanManageCatalog())

	assert.False(t, auth.RoleGuest.CanManageRegistrations())
	assert.False(t, auth.RoleGuest.CanManageCatalog())
}
