package entities

import (
	"fmt"

	domainerrors "menvo.backend/internal/domain/errors"
)

// Permission is a capability checked by route guards
type Permission string

const (
	PermProfileManage      Permission = "profile:manage"
	PermMentorSearch       Permission = "mentor:search"
	PermAppointmentBook    Permission = "appointment:book"
	PermAppointmentView    Permission = "appointment:view"
	PermAppointmentManage  Permission = "appointment:manage"
	PermAvailabilityManage Permission = "availability:manage"
	PermDocumentUpload     Permission = "document:upload"
	PermOrganizationCreate Permission = "organization:create"
	PermOrganizationManage Permission = "organization:manage"
	PermAdminAccess        Permission = "admin:access"
)

var allPermissions = []Permission{
	PermProfileManage,
	PermMentorSearch,
	PermAppointmentBook,
	PermAppointmentView,
	PermAppointmentManage,
	PermAvailabilityManage,
	PermDocumentUpload,
	PermOrganizationCreate,
	PermOrganizationManage,
	PermAdminAccess,
}

// RolePermissions is the full role to permission table. Every role in AllUserRoles must appear.
var RolePermissions = map[UserRole][]Permission{
	UserRoleMentee: {
		PermProfileManage,
		PermMentorSearch,
		PermAppointmentBook,
		PermAppointmentView,
		PermDocumentUpload,
	},
	UserRoleMentor: {
		PermProfileManage,
		PermMentorSearch,
		PermAppointmentView,
		PermAppointmentManage,
		PermAvailabilityManage,
		PermDocumentUpload,
	},
	UserRoleCompany: {
		PermProfileManage,
		PermMentorSearch,
		PermDocumentUpload,
		PermOrganizationCreate,
		PermOrganizationManage,
	},
	UserRoleRecruiter: {
		PermProfileManage,
		PermMentorSearch,
		PermDocumentUpload,
		PermOrganizationCreate,
		PermOrganizationManage,
	},
	UserRoleAdmin: allPermissions,
}

// PermissionsFor returns the permissions of role. Unknown or empty roles are an error, never an empty set.
func PermissionsFor(role UserRole) ([]Permission, error) {
	perms, ok := RolePermissions[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrUnknownRole, role)
	}
	return perms, nil
}

// HasPermission reports whether role grants perm
func HasPermission(role UserRole, perm Permission) (bool, error) {
	perms, err := PermissionsFor(role)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

// ValidatePermissionTable checks RolePermissions covers exactly the known roles with known permissions.
// Called at startup so a bad table stops the process.
func ValidatePermissionTable() error {
	known := make(map[Permission]struct{}, len(allPermissions))
	for _, p := range allPermissions {
		known[p] = struct{}{}
	}
	for _, role := range AllUserRoles {
		perms, ok := RolePermissions[role]
		if !ok {
			return fmt.Errorf("permission table: role %q has no entry", role)
		}
		if len(perms) == 0 {
			return fmt.Errorf("permission table: role %q has no permissions", role)
		}
		for _, p := range perms {
			if _, ok := known[p]; !ok {
				return fmt.Errorf("permission table: role %q lists unknown permission %q", role, p)
			}
		}
	}
	for role := range RolePermissions {
		if !role.IsValid() {
			return fmt.Errorf("permission table: unknown role %q", role)
		}
	}
	return nil
}
