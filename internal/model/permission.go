package model

// Permission names a boolean capability granted to an admin account.
// The set is fixed: tokens and route guards are validated against it, so a
// misspelled permission name fails at startup instead of silently reading
// as false.
type Permission string

const (
	// PermissionManageAdmins allows creating, updating, and deleting admin accounts.
	PermissionManageAdmins Permission = "can_manage_admins"

	// PermissionManageClasses allows creating, updating, and deleting classes.
	PermissionManageClasses Permission = "can_manage_classes"

	// PermissionManageStudents allows managing student accounts and their avatars.
	PermissionManageStudents Permission = "can_manage_students"

	// PermissionManageWeeks allows managing weekly content modules and their cards.
	PermissionManageWeeks Permission = "can_manage_weeks"

	// PermissionManagePoints allows awarding points to students.
	PermissionManagePoints Permission = "can_manage_points"

	// PermissionViewAnalytics allows viewing the engagement report.
	PermissionViewAnalytics Permission = "can_view_analytics"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionManageAdmins,
	PermissionManageClasses,
	PermissionManageStudents,
	PermissionManageWeeks,
	PermissionManagePoints,
	PermissionViewAnalytics,
}

// ValidPermission reports whether name is a known permission.
func ValidPermission(name string) bool {
	for _, p := range AllPermissions {
		if string(p) == name {
			return true
		}
	}
	return false
}

// PermissionFlags is the per-admin capability set as stored in the admins
// table and embedded into admin tokens.
type PermissionFlags struct {
	CanManageAdmins   bool `json:"can_manage_admins"`
	CanManageClasses  bool `json:"can_manage_classes"`
	CanManageStudents bool `json:"can_manage_students"`
	CanManageWeeks    bool `json:"can_manage_weeks"`
	CanManagePoints   bool `json:"can_manage_points"`
	CanViewAnalytics  bool `json:"can_view_analytics"`
}

// AsMap returns the flags keyed by permission name. Every known permission
// is present in the result, so token payloads always carry the full set.
func (f PermissionFlags) AsMap() map[string]bool {
	return map[string]bool{
		string(PermissionManageAdmins):   f.CanManageAdmins,
		string(PermissionManageClasses):  f.CanManageClasses,
		string(PermissionManageStudents): f.CanManageStudents,
		string(PermissionManageWeeks):    f.CanManageWeeks,
		string(PermissionManagePoints):   f.CanManagePoints,
		string(PermissionViewAnalytics):  f.CanViewAnalytics,
	}
}
