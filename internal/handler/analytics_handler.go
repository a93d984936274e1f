package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
)

// AnalyticsHandler serves the engagement report for admins.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetReport godoc
// GET /api/v1/admin/analytics/report
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	report, err := h.analyticsService.GetReport(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}
