package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/metrics"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
)

// StudentHandler handles admin-facing student management.
type StudentHandler struct {
	studentService *service.StudentService
	authService    *service.AuthService
	mediaService   *service.MediaService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	studentService *service.StudentService,
	authService *service.AuthService,
	mediaService *service.MediaService,
) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		authService:    authService,
		mediaService:   mediaService,
	}
}

// ListStudents godoc
// GET /api/v1/admin/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// CreateStudent godoc
// POST /api/v1/admin/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
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

	student := &model.Student{
		Name:     req.Name,
		Password: stored,
		ClassID:  req.ClassID,
		Points:   req.Points,
	}
	if err := h.studentService.Create(c.Request.Context(), student); err != nil {
		if errors.Is(err, repository.ErrDuplicatePassword) {
			response.Fail(c, http.StatusConflict, response.ErrPasswordConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/admin/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.studentService.GetByID(ctx, id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	points := existing.Points
	if req.Points != nil {
		points = *req.Points
	}
	student := &model.Student{ID: id, Name: req.Name, ClassID: req.ClassID, Points: points}
	if err := h.studentService.Update(ctx, student); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Password != "" {
		if ok := h.replacePassword(c, id, req.Password); !ok {
			return
		}
	}

	updated, err := h.studentService.GetByID(ctx, id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": updated})
}

// AddPoints godoc
// POST /api/v1/admin/students/:id/add-points
// Adds points to a student's score; a negative value deducts.
func (h *StudentHandler) AddPoints(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddPointsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.studentService.GetByID(ctx, id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	student, err := h.studentService.AddPoints(ctx, id, req.Points)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	metrics.PointsAwardedTotal.Inc()
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/admin/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// UploadStudentAvatar godoc
// POST /api/v1/admin/students/:id/avatar
// Stores an avatar for a specific student on their behalf.
func (h *StudentHandler) UploadStudentAvatar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.studentService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	url, ok := saveUpload(c, h.mediaService, service.MediaKindAvatar)
	if !ok {
		return
	}

	if err := h.studentService.UpdateAvatar(c.Request.Context(), id, url); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}

// replacePassword checks uniqueness, hashes, and stores a new credential
// for the student. Writes the error response itself on failure.
func (h *StudentHandler) replacePassword(c *gin.Context, id int, password string) bool {
	ctx := c.Request.Context()
	if err := h.authService.CheckPasswordAvailableFor(ctx, password, model.RoleStudent, id); err != nil {
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
	if err := h.studentService.UpdatePassword(ctx, id, stored); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	return true
}
