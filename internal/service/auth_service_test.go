package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/model"
)

type stubAdminStore struct {
	admins []model.Admin
	err    error
}

func (s *stubAdminStore) ListCredentials(ctx context.Context) ([]model.Admin, error) {
	return s.admins, s.err
}

type stubStudentStore struct {
	students []model.Student
	err      error
}

func (s *stubStudentStore) ListCredentials(ctx context.Context) ([]model.Student, error) {
	return s.students, s.err
}

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()

	verifier, err := NewPasswordVerifier("plain", 0)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}

	admins := &stubAdminStore{admins: []model.Admin{
		{ID: 1, Name: "Root", Password: "admin-pass", Flags: model.PermissionFlags{
			CanManageAdmins:   true,
			CanManageClasses:  true,
			CanManageStudents: true,
			CanManageWeeks:    true,
			CanManagePoints:   true,
			CanViewAnalytics:  true,
		}},
		{ID: 2, Name: "Helper", Password: "helper-pass", Flags: model.PermissionFlags{
			CanManagePoints: true,
		}},
	}}
	students := &stubStudentStore{students: []model.Student{
		{ID: 10, Name: "Siti", Password: "student-pass", Points: 40},
	}}

	return NewAuthService("test-secret", ttl, verifier, admins, students, zerolog.Nop())
}

func TestAuthenticate(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	p, err := svc.Authenticate(ctx, "admin-pass")
	if err != nil {
		t.Fatalf("Authenticate admin: %v", err)
	}
	if p == nil || p.Role != model.RoleAdmin || p.ID() != 1 {
		t.Fatalf("expected admin principal with ID 1, got %+v", p)
	}

	p, err = svc.Authenticate(ctx, "student-pass")
	if err != nil {
		t.Fatalf("Authenticate student: %v", err)
	}
	if p == nil || p.Role != model.RoleStudent || p.ID() != 10 {
		t.Fatalf("expected student principal with ID 10, got %+v", p)
	}

	p, err = svc.Authenticate(ctx, "no-such-pass")
	if err != nil {
		t.Fatalf("Authenticate unknown: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil principal for unknown password, got %+v", p)
	}
}

func TestAuthenticateStoreError(t *testing.T) {
	verifier, _ := NewPasswordVerifier("plain", 0)
	boom := errors.New("connection lost")
	svc := NewAuthService("test-secret", time.Hour, verifier,
		&stubAdminStore{err: boom}, &stubStudentStore{}, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "anything"); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestCheckPasswordAvailable(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	if err := svc.CheckPasswordAvailable(ctx, "admin-pass"); !errors.Is(err, ErrPasswordTaken) {
		t.Fatalf("expected ErrPasswordTaken for admin password, got %v", err)
	}
	if err := svc.CheckPasswordAvailable(ctx, "student-pass"); !errors.Is(err, ErrPasswordTaken) {
		t.Fatalf("expected ErrPasswordTaken for student password, got %v", err)
	}
	if err := svc.CheckPasswordAvailable(ctx, "brand-new-pass"); err != nil {
		t.Fatalf("expected free password to be available, got %v", err)
	}
}

// An account updating itself may re-submit its current password; the
// uniqueness check must not treat the account's own credential as a
// conflict.
func TestCheckPasswordAvailableForOwner(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	// Admin 1 keeping its own password is fine.
	if err := svc.CheckPasswordAvailableFor(ctx, "admin-pass", model.RoleAdmin, 1); err != nil {
		t.Fatalf("own password rejected: %v", err)
	}
	// Student 10 keeping its own password is fine.
	if err := svc.CheckPasswordAvailableFor(ctx, "student-pass", model.RoleStudent, 10); err != nil {
		t.Fatalf("own password rejected: %v", err)
	}

	// Another admin's password is still taken.
	if err := svc.CheckPasswordAvailableFor(ctx, "helper-pass", model.RoleAdmin, 1); !errors.Is(err, ErrPasswordTaken) {
		t.Fatalf("expected ErrPasswordTaken for another admin's password, got %v", err)
	}
	// The same numeric ID under a different role is a different account.
	if err := svc.CheckPasswordAvailableFor(ctx, "admin-pass", model.RoleStudent, 1); !errors.Is(err, ErrPasswordTaken) {
		t.Fatalf("expected ErrPasswordTaken across roles, got %v", err)
	}

	// A fresh password is available regardless of the caller.
	if err := svc.CheckPasswordAvailableFor(ctx, "brand-new-pass", model.RoleAdmin, 1); err != nil {
		t.Fatalf("expected free password to be available, got %v", err)
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	p, err := svc.Authenticate(ctx, "helper-pass")
	if err != nil || p == nil {
		t.Fatalf("Authenticate: p=%v err=%v", p, err)
	}

	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != model.RoleAdmin || claims.UserID != 2 {
		t.Fatalf("unexpected claims identity: role=%s user_id=%d", claims.Role, claims.UserID)
	}
	if !claims.HasPermission(model.PermissionManagePoints) {
		t.Fatal("expected can_manage_points to be granted")
	}
	if claims.HasPermission(model.PermissionManageAdmins) {
		t.Fatal("expected can_manage_admins to be withheld")
	}
	// Withheld flags are carried explicitly, not omitted.
	if len(claims.Permissions) != len(model.AllPermissions) {
		t.Fatalf("expected %d permission entries, got %d", len(model.AllPermissions), len(claims.Permissions))
	}
}

func TestIssueTokenStudentHasNoPermissions(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	p, err := svc.Authenticate(context.Background(), "student-pass")
	if err != nil || p == nil {
		t.Fatalf("Authenticate: p=%v err=%v", p, err)
	}

	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != model.RoleStudent || claims.Permissions != nil {
		t.Fatalf("expected student claims without permissions, got %+v", claims)
	}
	if claims.HasPermission(model.PermissionManagePoints) {
		t.Fatal("student claims must not grant admin permissions")
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	p, _ := svc.Authenticate(context.Background(), "admin-pass")
	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Flip one character of the signed token.
	raw := []byte(token)
	pos := len(raw) / 2
	if raw[pos] == 'a' {
		raw[pos] = 'b'
	} else {
		raw[pos] = 'a'
	}

	if _, err := svc.VerifyToken(string(raw)); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	// A negative TTL yields a token that is already expired at issuance.
	svc := newTestAuthService(t, -time.Minute)

	p, _ := svc.Authenticate(context.Background(), "admin-pass")
	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Expiry is indistinguishable from any other failure for callers.
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := newTestAuthService(t, time.Hour)

	verifier, _ := NewPasswordVerifier("plain", 0)
	other := NewAuthService("different-secret", time.Hour, verifier,
		&stubAdminStore{}, &stubStudentStore{}, zerolog.Nop())

	p, _ := issuer.Authenticate(context.Background(), "admin-pass")
	token, err := issuer.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := other.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid across secrets, got %v", err)
	}
	if _, err := other.VerifyToken("not-a-token-at-all"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage input, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	adminClaims := &Claims{
		Role:   model.RoleAdmin,
		UserID: 2,
		Permissions: map[string]bool{
			string(model.PermissionManagePoints):   true,
			string(model.PermissionManageClasses):  true,
			string(model.PermissionManageStudents): false,
		},
	}
	studentClaims := &Claims{Role: model.RoleStudent, UserID: 10}

	if err := Authorize(adminClaims, model.RoleAdmin); err != nil {
		t.Fatalf("role-only check should pass: %v", err)
	}
	if err := Authorize(studentClaims, model.RoleAdmin); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch for student claims, got %v", err)
	}
	if err := Authorize(adminClaims, "", model.PermissionManagePoints); err != nil {
		t.Fatalf("no role requirement should pass on permission alone: %v", err)
	}

	// All listed permissions are required.
	err := Authorize(adminClaims, model.RoleAdmin,
		model.PermissionManagePoints, model.PermissionManageClasses)
	if err != nil {
		t.Fatalf("expected both granted permissions to pass: %v", err)
	}

	err = Authorize(adminClaims, model.RoleAdmin,
		model.PermissionManagePoints, model.PermissionManageStudents)
	var perr *PermissionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
	if perr.Missing != model.PermissionManageStudents {
		t.Fatalf("expected missing permission %s, got %s", model.PermissionManageStudents, perr.Missing)
	}

	// A flag absent from the map reads as denied, same as an explicit false.
	err = Authorize(adminClaims, model.RoleAdmin, model.PermissionViewAnalytics)
	if !errors.As(err, &perr) || perr.Missing != model.PermissionViewAnalytics {
		t.Fatalf("expected missing can_view_analytics, got %v", err)
	}
}

func TestClaimsStaleAfterFlagChange(t *testing.T) {
	verifier, _ := NewPasswordVerifier("plain", 0)
	admins := &stubAdminStore{admins: []model.Admin{
		{ID: 1, Name: "Root", Password: "admin-pass", Flags: model.PermissionFlags{CanManagePoints: true}},
	}}
	svc := NewAuthService("test-secret", time.Hour, verifier, admins, &stubStudentStore{}, zerolog.Nop())

	p, _ := svc.Authenticate(context.Background(), "admin-pass")
	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Revoke the flag in the store after issuance.
	admins.admins[0].Flags.CanManagePoints = false

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	// The token keeps the flags frozen at login until it expires.
	if err := Authorize(claims, model.RoleAdmin, model.PermissionManagePoints); err != nil {
		t.Fatalf("expected frozen claims to still authorize, got %v", err)
	}
}
