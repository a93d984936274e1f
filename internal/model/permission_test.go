package model

import "testing"

func TestValidPermission(t *testing.T) {
	for _, p := range AllPermissions {
		if !ValidPermission(string(p)) {
			t.Fatalf("expected %s to be valid", p)
		}
	}
	for _, name := range []string{"", "can_fly", "CAN_MANAGE_ADMINS", "can_manage_admin"} {
		if ValidPermission(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}

func TestPermissionFlagsAsMap(t *testing.T) {
	flags := PermissionFlags{CanManageWeeks: true, CanViewAnalytics: true}
	m := flags.AsMap()

	if len(m) != len(AllPermissions) {
		t.Fatalf("expected an entry per permission, got %d", len(m))
	}
	for name := range m {
		if !ValidPermission(name) {
			t.Fatalf("map carries unknown permission %q", name)
		}
	}
	if !m[string(PermissionManageWeeks)] || !m[string(PermissionViewAnalytics)] {
		t.Fatal("granted flags lost in map form")
	}
	if m[string(PermissionManageAdmins)] {
		t.Fatal("withheld flag reads as granted")
	}
}
