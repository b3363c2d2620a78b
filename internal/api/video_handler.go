package api

import (
	"errors"
	"net/http"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler holds the video service dependency.
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// --- DTOs ---

// CreateVideoRequest defines the expected JSON for adding a library video.
type CreateVideoRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

// VideoResponse is the DTO for returning a library video, with the
// normalized embed URL attached for the dashboard player.
type VideoResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	EmbedURL  string    `json:"embedUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapVideoToResponse converts a domain.ExerciseVideo to VideoResponse.
func MapVideoToResponse(v *domain.ExerciseVideo) VideoResponse {
	return VideoResponse{
		ID:        v.ID.Hex(),
		Name:      v.Name,
		URL:       v.URL,
		EmbedURL:  service.ResolveEmbedURL(v.URL),
		CreatedAt: v.CreatedAt,
	}
}

// --- Handler Methods ---

// ListVideos handles GET /exercises.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load exercise videos")
		return
	}

	responses := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, MapVideoToResponse(&videos[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateVideo handles POST /exercises.
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	video, err := h.videoService.Add(c.Request.Context(), req.Name, req.URL)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to add exercise video")
		return
	}

	c.JSON(http.StatusCreated, MapVideoToResponse(video))
}

// DeleteVideo handles DELETE /exercises/:id.
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Exercise video not found")
		return
	}

	if err := h.videoService.Remove(c.Request.Context(), videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise video not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise video deleted"})
}
