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

// MemberHandler holds the member service dependency.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- DTOs ---

// CreateMemberRequest defines the expected JSON for registering a member.
type CreateMemberRequest struct {
	Name  string      `json:"name" binding:"required"`
	Email string      `json:"email" binding:"required,email"`
	Phone string      `json:"phone"`
	Plan  domain.Plan `json:"plan" binding:"required,oneof=monthly 3-month yearly"`
}

// RenewMemberRequest defines the expected JSON for renewing a membership.
type RenewMemberRequest struct {
	NewPlan domain.Plan `json:"newplan" binding:"required"`
}

// RequestSummary is the joined program-request view on a member.
type RequestSummary struct {
	Goal        string               `json:"goal"`
	Level       string               `json:"level"`
	Status      domain.RequestStatus `json:"status"`
	RequestedAt time.Time            `json:"requestedAt"`
}

// ProgramSummary is the joined program view on a member.
type ProgramSummary struct {
	Days      []domain.ProgramDay `json:"days"`
	FileName  string              `json:"fileName"`
	CreatedAt time.Time           `json:"createdAt"`
}

// MemberResponse is the DTO for returning member details. Status and
// daysLeft are derived from the end date at response time, never stored.
type MemberResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone,omitempty"`
	Plan           domain.Plan             `json:"plan"`
	StartDate      time.Time               `json:"startDate"`
	EndDate        time.Time               `json:"endDate"`
	Status         domain.MembershipStatus `json:"status"`
	DaysLeft       int                     `json:"daysLeft"`
	ProgramRequest *RequestSummary         `json:"programRequest"`
	Program        *ProgramSummary         `json:"program"`
}

// MapMemberToResponse converts a member detail into the response DTO,
// deriving the membership status against now.
func MapMemberToResponse(detail *service.MemberDetail, now time.Time) MemberResponse {
	status, daysLeft := domain.ComputeStatus(detail.Member.EndDate, now)

	resp := MemberResponse{
		ID:        detail.Member.ID.Hex(),
		Name:      detail.Member.Name,
		Email:     detail.Member.Email,
		Phone:     detail.Member.Phone,
		Plan:      detail.Member.Plan,
		StartDate: detail.Member.StartDate,
		EndDate:   detail.Member.EndDate,
		Status:    status,
		DaysLeft:  daysLeft,
	}
	if detail.Request != nil {
		resp.ProgramRequest = &RequestSummary{
			Goal:        detail.Request.Goal,
			Level:       detail.Request.Level,
			Status:      detail.Request.Status,
			RequestedAt: detail.Request.RequestedAt,
		}
	}
	if detail.Program != nil {
		resp.Program = &ProgramSummary{
			Days:      detail.Program.Days,
			FileName:  detail.Program.FileName,
			CreatedAt: detail.Program.CreatedAt,
		}
	}
	return resp
}

// --- Handler Methods ---

// CreateMember handles POST /members.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	member, err := h.memberService.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add member")
		}
		return
	}

	detail := &service.MemberDetail{Member: *member}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added",
		"member":  MapMemberToResponse(detail, time.Now()),
	})
}

// ListMembers handles GET /members.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	details, err := h.memberService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load members")
		return
	}

	now := time.Now()
	responses := make([]MemberResponse, 0, len(details))
	for i := range details {
		responses = append(responses, MapMemberToResponse(&details[i], now))
	}
	c.JSON(http.StatusOK, responses)
}

// SearchMember handles GET /members/search/:email.
func (h *MemberHandler) SearchMember(c *gin.Context) {
	email := c.Param("email")

	detail, err := h.memberService.SearchByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to search members")
		return
	}

	c.JSON(http.StatusOK, MapMemberToResponse(detail, time.Now()))
}

// DeleteMember handles DELETE /members/:id.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// RenewMember handles POST /members/:id/renew.
func (h *MemberHandler) RenewMember(c *gin.Context) {
	memberID, ok := parseMemberID(c)
	if !ok {
		return
	}

	var req RenewMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	member, err := h.memberService.Renew(c.Request.Context(), memberID, req.NewPlan)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to renew membership")
		return
	}

	detail := &service.MemberDetail{Member: *member}
	c.JSON(http.StatusOK, gin.H{
		"message": "Membership renewed",
		"member":  MapMemberToResponse(detail, time.Now()),
	})
}

// parseMemberID reads the :id path param, aborting with 404 on garbage so
// unknown and malformed IDs look the same to the caller.
func parseMemberID(c *gin.Context) (primitive.ObjectID, bool) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Member not found")
		return primitive.NilObjectID, false
	}
	return memberID, true
}
