package model

import "time"

// Admin represents an admin account with its capability flags.
type Admin struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Password  string          `json:"-"`
	Flags     PermissionFlags `json:"permission_flags"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateAdminRequest is the payload for creating a new admin account.
type CreateAdminRequest struct {
	Name              string `json:"name" binding:"required,min=2,max=100"`
	Password          string `json:"password" binding:"required,min=4,max=128"`
	CanManageAdmins   bool   `json:"can_manage_admins"`
	CanManageClasses  bool   `json:"can_manage_classes"`
	CanManageStudents bool   `json:"can_manage_students"`
	CanManageWeeks    bool   `json:"can_manage_weeks"`
	CanManagePoints   bool   `json:"can_manage_points"`
	CanViewAnalytics  bool   `json:"can_view_analytics"`
}

// UpdateAdminRequest is the payload for updating an admin account.
// An empty password leaves the stored credential untouched.
type UpdateAdminRequest struct {
	Name              string `json:"name" binding:"required,min=2,max=100"`
	Password          string `json:"password" binding:"omitempty,min=4,max=128"`
	CanManageAdmins   bool   `json:"can_manage_admins"`
	CanManageClasses  bool   `json:"can_manage_classes"`
	CanManageStudents bool   `json:"can_manage_students"`
	CanManageWeeks    bool   `json:"can_manage_weeks"`
	CanManagePoints   bool   `json:"can_manage_points"`
	CanViewAnalytics  bool   `json:"can_view_analytics"`
}

// Flags collects the request's permission booleans into a PermissionFlags.
func (r CreateAdminRequest) Flags() PermissionFlags {
	return PermissionFlags{
		CanManageAdmins:   r.CanManageAdmins,
		CanManageClasses:  r.CanManageClasses,
		CanManageStudents: r.CanManageStudents,
		CanManageWeeks:    r.CanManageWeeks,
		CanManagePoints:   r.CanManagePoints,
		CanViewAnalytics:  r.CanViewAnalytics,
	}
}

// Flags collects the request's permission booleans into a PermissionFlags.
func (r UpdateAdminRequest) Flags() PermissionFlags {
	return PermissionFlags{
		CanManageAdmins:   r.CanManageAdmins,
		CanManageClasses:  r.CanManageClasses,
		CanManageStudents: r.CanManageStudents,
		CanManageWeeks:    r.CanManageWeeks,
		CanManagePoints:   r.CanManagePoints,
		CanViewAnalytics:  r.CanViewAnalytics,
	}
}
