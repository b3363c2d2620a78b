package api

import (
	"errors"
	"net/http"

	"ironpeak/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service dependency.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// CompleteWorkout handles POST /members/:id/complete-workout.
func (h *StatsHandler) CompleteWorkout(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	stats, xpEarned, err := h.statsService.CompleteWorkout(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyWorkedOut):
			c.JSON(http.StatusOK, gin.H{"message": "Already worked out today"})
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, "Member not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record workout")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Workout recorded",
		"xpEarned": xpEarned,
		"stats":    stats,
	})
}

// GetStats handles GET /members/:id/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Leaderboard handles GET /leaderboard.
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.statsService.Leaderboard(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}
