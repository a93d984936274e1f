package model

// Role discriminates the two principal kinds.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Principal is the authenticated entity produced by a successful login.
// Exactly one of Admin or Student is set, matching Role. IDs are only
// unique within a role's own namespace, so Role is always needed to
// address the underlying record.
type Principal struct {
	Role    Role
	Admin   *Admin
	Student *Student
}

// ID returns the principal's identifier within its role namespace.
func (p Principal) ID() int {
	if p.Role == RoleAdmin && p.Admin != nil {
		return p.Admin.ID
	}
	if p.Student != nil {
		return p.Student.ID
	}
	return 0
}

// Name returns the principal's display name.
func (p Principal) Name() string {
	if p.Role == RoleAdmin && p.Admin != nil {
		return p.Admin.Name
	}
	if p.Student != nil {
		return p.Student.Name
	}
	return ""
}
