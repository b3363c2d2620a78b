package api

import (
	"errors"
	"net/http"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

// RequestProgramRequest defines the expected JSON for requesting a program.
type RequestProgramRequest struct {
	Goal  string `json:"goal" binding:"required"`
	Level string `json:"level" binding:"required"`
}

// CreateProgramRequest defines the expected JSON for authoring a program.
// Exercise-level validation (dropping unnamed rows) happens in the service.
type CreateProgramRequest struct {
	Days []domain.ProgramDay `json:"days" binding:"required"`
}

// --- Handler Methods ---

// RequestProgram handles POST /members/:id/request-program.
func (h *ProgramHandler) RequestProgram(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	var req RequestProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.programService.RequestProgram(c.Request.Context(), memberID, req.Goal, req.Level); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save program request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Program request received"})
}

// GetRequest handles GET /members/:id/request.
func (h *ProgramHandler) GetRequest(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	request, err := h.programService.GetRequest(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load program request")
		return
	}

	// request is nil when the member never asked for a program.
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// CreateProgram handles POST /members/:id/create-program.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), memberID, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, "Member not found")
		case errors.Is(err, service.ErrInvalidProgram):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create program")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Program created!",
		"program": ProgramSummary{
			Days:      program.Days,
			FileName:  program.FileName,
			CreatedAt: program.CreatedAt,
		},
	})
}

// GetProgram handles GET /members/:id/program.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load program")
		return
	}

	if program == nil {
		c.JSON(http.StatusOK, gin.H{"program": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"program": ProgramSummary{
		Days:      program.Days,
		FileName:  program.FileName,
		CreatedAt: program.CreatedAt,
	}})
}

// DownloadProgram handles GET /members/:id/download by redirecting to a
// presigned URL for the stored PDF.
func (h *ProgramHandler) DownloadProgram(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	url, err := h.programService.GetDownloadURL(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, "Member not found")
		case errors.Is(err, service.ErrNoProgram):
			abortWithError(c, http.StatusNotFound, "Program not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare download")
		}
		return
	}

	c.Redirect(http.StatusFound, url)
}
