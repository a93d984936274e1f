package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
)

// ClassHandler handles class management (CRUD) and the public class list.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/public/classes
// GET /api/v1/admin/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClass godoc
// POST /api/v1/admin/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{Name: req.Name}
	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/admin/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.classService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	class := &model.Class{ID: id, Name: req.Name}
	if err := h.classService.Update(c.Request.Context(), class); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, _ := h.classService.GetByID(c.Request.Context(), id)
	response.Success(c, http.StatusOK, gin.H{"class": updated})
}

// DeleteClass godoc
// DELETE /api/v1/admin/classes/:id
// Fails with a conflict while students still belong to the class.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.classService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}
