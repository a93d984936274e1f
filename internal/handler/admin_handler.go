package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
)

// AdminHandler handles admin account management (CRUD).
type AdminHandler struct {
	adminService *service.AdminService
	authService  *service.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{adminService: adminService, authService: authService}
}

// ListAdmins godoc
// GET /api/v1/admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admins": admins})
}

// CreateAdmin godoc
// POST /api/v1/admin/admins
// Creates a new admin account. Passwords must be unique across all
// accounts, since the password alone identifies the account at login.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.CheckPasswordAvailable(c.Request.Context(), req.Password); err != nil {
		if errors.Is(err, service.ErrPasswordTaken) {
			response.Fail(c, http.StatusConflict, response.ErrPasswordConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	stored, err := h.authService.HashPassword(req.Password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	admin := &model.Admin{
		Name:     req.Name,
		Password: stored,
		Flags:    req.Flags(),
	}
	if err := h.adminService.Create(c.Request.Context(), admin); err != nil {
		if errors.Is(err, repository.ErrDuplicatePassword) {
			response.Fail(c, http.StatusConflict, response.ErrPasswordConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"admin": admin})
}

// UpdateAdmin godoc
// PUT /api/v1/admin/admins/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.adminService.GetByID(ctx, id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	admin := &model.Admin{ID: id, Name: req.Name, Flags: req.Flags()}
	if err := h.adminService.Update(ctx, admin); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Password != "" {
		if ok := h.replacePassword(c, id, req.Password); !ok {
			return
		}
	}

	updated, err := h.adminService.GetByID(ctx, id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"admin": updated})
}

// DeleteAdmin godoc
// DELETE /api/v1/admin/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.adminService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "admin deleted successfully"})
}

// replacePassword checks uniqueness, hashes, and stores a new credential
// for the admin. Writes the error response itself on failure.
func (h *AdminHandler) replacePassword(c *gin.Context, id int, password string) bool {
	ctx := c.Request.Context()
	// The password may already belong to this same admin; anyone else
	// holding it is a conflict.
	if err := h.authService.CheckPasswordAvailableFor(ctx, password, model.RoleAdmin, id); err != nil {
		if errors.Is(err, service.ErrPasswordTaken) {
			response.Fail(c, http.StatusConflict, response.ErrPasswordConflict)
			return false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}

	stored, err := h.authService.HashPassword(password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	if err := h.adminService.UpdatePassword(ctx, id, stored); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	return true
}
