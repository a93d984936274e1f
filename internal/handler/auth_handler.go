package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/metrics"
	"github.com/gharsapp/ghars-backend/internal/middleware"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
)

// LoginRequest is the password-only login payload. There are no usernames:
// the password alone identifies the account.
type LoginRequest struct {
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// AuthHandler handles authentication and own-profile endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	adminService   *service.AdminService
	studentService *service.StudentService
	mediaService   *service.MediaService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	adminService *service.AdminService,
	studentService *service.StudentService,
	mediaService *service.MediaService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		adminService:   adminService,
		studentService: studentService,
		mediaService:   mediaService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Resolves the password to an admin or student account and returns a
// signed token. The rejection is identical for a wrong password and an
// unknown one — with no usernames there is nothing else to reveal.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	principal, err := h.authService.Authenticate(c.Request.Context(), req.Password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if principal == nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.IssueToken(principal)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	metrics.LoginsTotal.WithLabelValues(string(principal.Role)).Inc()

	if principal.Role == model.RoleAdmin {
		response.Success(c, http.StatusOK, gin.H{
			"token": token,
			"role":  principal.Role,
			"admin": principal.Admin,
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"role":    principal.Role,
		"student": principal.Student,
	})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated admin or student.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	switch claims.Role {
	case model.RoleAdmin:
		admin, err := h.adminService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"role": claims.Role, "admin": admin})
	case model.RoleStudent:
		student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"role": claims.Role, "student": student})
	default:
		response.Fail(c, http.StatusForbidden, response.ErrTokenInvalid)
	}
}

// UploadAvatar godoc
// POST /api/v1/auth/me/avatar
// Stores an avatar for the currently authenticated user.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	url, ok := saveUpload(c, h.mediaService, service.MediaKindAvatar)
	if !ok {
		return
	}

	var err error
	switch claims.Role {
	case model.RoleAdmin:
		err = h.adminService.UpdateAvatar(c.Request.Context(), claims.UserID, url)
	case model.RoleStudent:
		err = h.studentService.UpdateAvatar(c.Request.Context(), claims.UserID, url)
	default:
		response.Fail(c, http.StatusForbidden, response.ErrTokenInvalid)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}
