package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// PrescriptionHandler handles prescription settlement HTTP requests
type PrescriptionHandler struct {
	reconcileService *service.ReconcileService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(reconcileService *service.ReconcileService) *PrescriptionHandler {
	return &PrescriptionHandler{reconcileService: reconcileService}
}

// Settle handles marking one prescription paid outside the POS flow
func (h *PrescriptionHandler) Settle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	prescription, err := h.reconcileService.SettlePrescription(c.Request.Context(), id, userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription settled successfully", prescription)
}

// ListUnpaid handles listing prescriptions awaiting payment
func (h *PrescriptionHandler) ListUnpaid(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.reconcileService.ListUnpaidPrescriptions(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Unpaid prescriptions retrieved successfully", result)
}

// GetByAppointment handles listing every prescription on an appointment
func (h *PrescriptionHandler) GetByAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	prescriptions, err := h.reconcileService.GetAppointmentPrescriptions(c.Request.Context(), appointmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescriptions retrieved successfully", gin.H{
		"prescriptions": prescriptions,
	})
}
