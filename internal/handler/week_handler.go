package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
	"github.com/gharsapp/ghars-backend/internal/validator"
)

// WeekHandler handles weekly content modules: public reads plus admin CRUD,
// content cards, and video upload.
type WeekHandler struct {
	weekService  *service.WeekService
	mediaService *service.MediaService
}

// NewWeekHandler creates a new WeekHandler.
func NewWeekHandler(weekService *service.WeekService, mediaService *service.MediaService) *WeekHandler {
	return &WeekHandler{weekService: weekService, mediaService: mediaService}
}

// ListPublicWeeks godoc
// GET /api/v1/public/weeks
// Lists only unlocked weeks with their content.
func (h *WeekHandler) ListPublicWeeks(c *gin.Context) {
	weeks, err := h.weekService.ListUnlocked(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"weeks": weeks})
}

// GetWeek godoc
// GET /api/v1/public/weeks/:id
// Returns the week regardless of lock state; the frontend gates locked
// content on the is_locked flag.
func (h *WeekHandler) GetWeek(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	week, err := h.weekService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week": week})
}

// ListAllWeeks godoc
// GET /api/v1/admin/weeks
// Lists every week, locked and unlocked, for the admin panel.
func (h *WeekHandler) ListAllWeeks(c *gin.Context) {
	weeks, err := h.weekService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"weeks": weeks})
}

// CreateWeek godoc
// POST /api/v1/admin/weeks
func (h *WeekHandler) CreateWeek(c *gin.Context) {
	var req model.CreateWeekRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// New weeks start locked unless explicitly requested otherwise.
	locked := true
	if req.IsLocked != nil {
		locked = *req.IsLocked
	}

	week := &model.Week{Title: req.Title, IsLocked: locked, Cards: []model.ContentCard{}}
	if err := h.weekService.Create(c.Request.Context(), week); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"week": week})
}

// UpdateWeek godoc
// PUT /api/v1/admin/weeks/:id
func (h *WeekHandler) UpdateWeek(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateWeekRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	week, err := h.weekService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week": week})
}

// DeleteWeek godoc
// DELETE /api/v1/admin/weeks/:id
func (h *WeekHandler) DeleteWeek(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.weekService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.weekService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "week deleted successfully"})
}

// UploadWeekVideo godoc
// POST /api/v1/admin/weeks/:id/video
// Uploads the week's video and records its URL.
func (h *WeekHandler) UploadWeekVideo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.weekService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	url, ok := saveUpload(c, h.mediaService, service.MediaKindVideo)
	if !ok {
		return
	}

	week, err := h.weekService.SetVideoURL(c.Request.Context(), id, url)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week": week})
}

// AddCard godoc
// POST /api/v1/admin/weeks/:id/cards
func (h *WeekHandler) AddCard(c *gin.Context) {
	weekID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ContentCardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.weekService.GetByID(c.Request.Context(), weekID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	card := &model.ContentCard{WeekID: weekID, Title: req.Title, Description: req.Description}
	if err := h.weekService.AddCard(c.Request.Context(), card); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"card": card})
}

// UpdateCard godoc
// PUT /api/v1/admin/weeks/:id/cards/:card_id
func (h *WeekHandler) UpdateCard(c *gin.Context) {
	weekID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	cardID, err := strconv.Atoi(c.Param("card_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ContentCardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	card := &model.ContentCard{ID: cardID, WeekID: weekID, Title: req.Title, Description: req.Description}
	if err := h.weekService.UpdateCard(c.Request.Context(), card); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"card": card})
}

// DeleteCard godoc
// DELETE /api/v1/admin/weeks/:id/cards/:card_id
func (h *WeekHandler) DeleteCard(c *gin.Context) {
	cardID, err := strconv.Atoi(c.Param("card_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.weekService.DeleteCard(c.Request.Context(), cardID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "card deleted successfully"})
}
