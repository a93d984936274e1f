package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
)

// LeaderboardHandler serves the public points leaderboard.
type LeaderboardHandler struct {
	studentService *service.StudentService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(studentService *service.StudentService) *LeaderboardHandler {
	return &LeaderboardHandler{studentService: studentService}
}

// GetLeaderboard godoc
// GET /api/v1/public/leaderboard
// Returns all students ordered by points descending. Served from the
// cached snapshot when one is available.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	students, err := h.studentService.Leaderboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leaderboard": students})
}
