package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/request"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/internal/presentation/http/middleware"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// ClinicHandler handles clinic-related HTTP requests
type ClinicHandler struct {
	clinicService *service.ClinicService
}

// NewClinicHandler creates a new clinic handler
func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

// Create handles creating a clinic owned by the current user
func (h *ClinicHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clinic, err := h.clinicService.CreateClinic(c.Request.Context(), &service.CreateClinicInput{
		Name:    req.Name,
		Slug:    req.Slug,
		OwnerID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Clinic created successfully", gin.H{
		"clinic": clinic,
	})
}

// GetCurrent returns the clinic resolved for this request
func (h *ClinicHandler) GetCurrent(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	clinic, err := h.clinicService.GetClinic(c.Request.Context(), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic retrieved successfully", gin.H{
		"clinic": clinic,
	})
}

// List returns the clinics the current user belongs to. Super admins see
// every clinic.
func (h *ClinicHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	var result *pagination.PaginatedResult[entity.Clinic]
	var err error
	if IsSuperAdmin(c) {
		result, err = h.clinicService.ListAllClinics(c.Request.Context(), &params)
	} else {
		result, err = h.clinicService.GetUserClinics(c.Request.Context(), *userID, &params)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clinics retrieved successfully", result)
}

// Update updates the current clinic's profile
func (h *ClinicHandler) Update(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	var req request.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	clinic, err := h.clinicService.UpdateClinic(c.Request.Context(), &service.UpdateClinicInput{
		ID:   clinicID,
		Name: name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic updated successfully", gin.H{
		"clinic": clinic,
	})
}

// UpdateSettings replaces the current clinic's settings
func (h *ClinicHandler) UpdateSettings(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	var req request.UpdateClinicSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clinic, err := h.clinicService.UpdateClinicSettings(c.Request.Context(), clinicID, entity.ClinicSettings{
		LogoURL:            req.LogoURL,
		Address:            req.Address,
		Phone:              req.Phone,
		Currency:           req.Currency,
		CurrencySymbol:     req.CurrencySymbol,
		Timezone:           req.Timezone,
		DateFormat:         req.DateFormat,
		InvoicePrefix:      req.InvoicePrefix,
		RoundingMode:       enum.RoundingMode(req.RoundingMode),
		MinPartialPercent:  req.MinPartialPercent,
		SlotCapacity:       req.SlotCapacity,
		EmailNotifications: req.EmailNotifications,
		WebhookURL:         req.WebhookURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic settings updated successfully", gin.H{
		"clinic": clinic,
	})
}

// ListMembers returns all members of the current clinic
func (h *ClinicHandler) ListMembers(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	members, err := h.clinicService.GetClinicMembers(c.Request.Context(), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{
		"members": members,
	})
}

// InviteMember adds a user to the current clinic's staff
func (h *ClinicHandler) InviteMember(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	var req request.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	err = h.clinicService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		ClinicID: clinicID,
		UserID:   memberID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member invited successfully", nil)
}

// RemoveMember removes a user from the current clinic
func (h *ClinicHandler) RemoveMember(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.clinicService.RemoveMember(c.Request.Context(), clinicID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}

// UpdateMemberRole updates a member's role in the current clinic
func (h *ClinicHandler) UpdateMemberRole(c *gin.Context) {
	clinicID := middleware.GetClinicID(c)
	if clinicID == uuid.Nil {
		response.BadRequest(c, "No active clinic")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.clinicService.UpdateMemberRole(c.Request.Context(), clinicID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// AssignUser assigns a user to a clinic (super admin only)
func (h *ClinicHandler) AssignUser(c *gin.Context) {
	var req struct {
		ClinicID uuid.UUID `json:"clinic_id" binding:"required"`
		UserID   uuid.UUID `json:"user_id" binding:"required"`
		Role     string    `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Role == "" {
		req.Role = "member"
	}

	err := h.clinicService.AssignUserToClinic(c.Request.Context(), &service.AssignUserToClinicInput{
		ClinicID: req.ClinicID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User assigned to clinic successfully", nil)
}
