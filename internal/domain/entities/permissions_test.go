package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "menvo.backend/internal/domain/errors"
)

func TestValidatePermissionTable(t *testing.T) {
	require.NoError(t, ValidatePermissionTable())
}

func TestValidatePermissionTable_DetectsGaps(t *testing.T) {
	orig := RolePermissions
	t.Cleanup(func() { RolePermissions = orig })

	RolePermissions = map[UserRole][]Permission{UserRoleMentee: {PermProfileManage}}
	assert.ErrorContains(t, ValidatePermissionTable(), "has no entry")

	RolePermissions = copyTable(orig)
	RolePermissions[UserRoleMentor] = nil
	assert.ErrorContains(t, ValidatePermissionTable(), "has no permissions")

	RolePermissions = copyTable(orig)
	RolePermissions[UserRoleCompany] = []Permission{"payments:refund"}
	assert.ErrorContains(t, ValidatePermissionTable(), "unknown permission")

	RolePermissions = copyTable(orig)
	RolePermissions["superuser"] = []Permission{PermAdminAccess}
	assert.ErrorContains(t, ValidatePermissionTable(), "unknown role")
}

func copyTable(src map[UserRole][]Permission) map[UserRole][]Permission {
	dst := make(map[UserRole][]Permission, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func TestPermissionsFor_UnknownRoleFails(t *testing.T) {
	_, err := PermissionsFor("superuser")
	assert.ErrorIs(t, err, domainerrors.ErrUnknownRole)

	_, err = PermissionsFor(UserRoleNone)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownRole)

	ok, err := HasPermission("ghost", PermMentorSearch)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestHasPermission_Matrix(t *testing.T) {
	cases := []struct {
		role UserRole
		perm Permission
		want bool
	}{
		{UserRoleMentee, PermAppointmentBook, true},
		{UserRoleMentee, PermAvailabilityManage, false},
		{UserRoleMentor, PermAvailabilityManage, true},
		{UserRoleMentor, PermAppointmentBook, false},
		{UserRoleCompany, PermOrganizationCreate, true},
		{UserRoleRecruiter, PermOrganizationManage, true},
		{UserRoleRecruiter, PermAdminAccess, false},
		{UserRoleAdmin, PermAdminAccess, true},
		{UserRoleAdmin, PermAvailabilityManage, true},
	}
	for _, tc := range cases {
		got, err := HasPermission(tc.role, tc.perm)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.role, tc.perm)
	}
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole(" Mentor ")
	require.NoError(t, err)
	assert.Equal(t, UserRoleMentor, role)

	role, err = ParseUserRole("")
	require.NoError(t, err)
	assert.Equal(t, UserRoleNone, role)

	_, err = ParseUserRole("ADMIN_SUPER")
	assert.ErrorIs(t, err, domainerrors.ErrUnknownRole)

	assert.True(t, UserRoleRecruiter.SelfSelectable())
	assert.False(t, UserRoleAdmin.SelfSelectable())
	assert.False(t, UserRoleNone.SelfSelectable())
}
