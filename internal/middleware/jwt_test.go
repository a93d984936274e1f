package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/model"
)

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	svc := newTestAuthService(t)
	token := issueToken(t, svc, "student-pass")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(svc), func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, string(claims.Role))
	})

	// Browsers cannot set headers on WebSocket upgrades, so the token is
	// also accepted as a query parameter.
	req := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != string(model.RoleStudent) {
		t.Fatalf("expected student role in claims, got %q", w.Body.String())
	}
}

func TestRequireStudentRejectsAdminToken(t *testing.T) {
	svc := newTestAuthService(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/student-only", RequireStudent(svc), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, "scoped-pass"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin token on student route, got %d", w.Code)
	}
}

func TestRequireAdminRejectsMalformedHeader(t *testing.T) {
	svc := newTestAuthService(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", RequireAdmin(svc), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", issueToken(t, svc, "scoped-pass")) // missing Bearer prefix
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed header, got %d", w.Code)
	}
}
