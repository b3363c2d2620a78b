package api

import (
	"net/http"

	"ironpeak/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TipsHandler holds the tips service dependency.
type TipsHandler struct {
	tipsService service.TipsService
}

// NewTipsHandler creates a new TipsHandler.
func NewTipsHandler(tipsService service.TipsService) *TipsHandler {
	return &TipsHandler{tipsService: tipsService}
}

// TipsRequest defines the expected JSON for requesting AI tips.
type TipsRequest struct {
	MemberName string   `json:"memberName" binding:"required"`
	Goal       string   `json:"goal"`
	Level      string   `json:"level"`
	Exercises  []string `json:"exercises"`
}

// GetTips handles POST /ai/tips. The advisor always produces something:
// total backend failure degrades to the backup template, never an error.
func (h *TipsHandler) GetTips(c *gin.Context) {
	var req TipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tips, model := h.tipsService.GetTips(c.Request.Context(), req.MemberName, req.Goal, req.Level, req.Exercises)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tips":    tips,
		"model":   model,
	})
}
