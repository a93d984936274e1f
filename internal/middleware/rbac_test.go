package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/service"
)

type stubAdminStore struct {
	admins []model.Admin
}

func (s *stubAdminStore) ListCredentials(ctx context.Context) ([]model.Admin, error) {
	return s.admins, nil
}

type stubStudentStore struct {
	students []model.Student
}

func (s *stubStudentStore) ListCredentials(ctx context.Context) ([]model.Student, error) {
	return s.students, nil
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	verifier, err := service.NewPasswordVerifier("plain", 0)
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}

	admins := &stubAdminStore{admins: []model.Admin{
		{ID: 1, Name: "Scoped", Password: "scoped-pass", Flags: model.PermissionFlags{
			CanManagePoints: true,
		}},
	}}
	students := &stubStudentStore{students: []model.Student{
		{ID: 10, Name: "Siti", Password: "student-pass"},
	}}

	return service.NewAuthService("test-secret", time.Hour, verifier, admins, students, zerolog.Nop())
}

func issueToken(t *testing.T, svc *service.AuthService, password string) string {
	t.Helper()

	p, err := svc.Authenticate(context.Background(), password)
	if err != nil || p == nil {
		t.Fatalf("Authenticate: p=%v err=%v", p, err)
	}
	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func newTestRouter(svc *service.AuthService, perms ...model.Permission) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", RequireAdmin(svc), RequirePermissions(perms...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePermissionsPanicsOnUnknownName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown permission name")
		}
	}()
	RequirePermissions(model.Permission("can_fly"))
}

func TestGuardedRouteAllowsGrantedAdmin(t *testing.T) {
	svc := newTestAuthService(t)
	r := newTestRouter(svc, model.PermissionManagePoints)

	w := doRequest(r, issueToken(t, svc, "scoped-pass"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuardedRouteDeniesMissingPermission(t *testing.T) {
	svc := newTestAuthService(t)
	r := newTestRouter(svc, model.PermissionManageAdmins)

	w := doRequest(r, issueToken(t, svc, "scoped-pass"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuardedRouteRequiresEveryPermission(t *testing.T) {
	svc := newTestAuthService(t)
	r := newTestRouter(svc, model.PermissionManagePoints, model.PermissionManageStudents)

	// One granted flag out of two required is still a denial.
	w := doRequest(r, issueToken(t, svc, "scoped-pass"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuardedRouteRejectsStudentToken(t *testing.T) {
	svc := newTestAuthService(t)
	r := newTestRouter(svc, model.PermissionManagePoints)

	w := doRequest(r, issueToken(t, svc, "student-pass"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuardedRouteRejectsMissingAndGarbageTokens(t *testing.T) {
	svc := newTestAuthService(t)
	r := newTestRouter(svc, model.PermissionManagePoints)

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doRequest(r, "garbage.token.value"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}
