package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/request"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func parseAppointmentStatus(value string) (enum.AppointmentStatus, bool) {
	switch value {
	case "Scheduled":
		return enum.AppointmentStatusScheduled, true
	case "Completed":
		return enum.AppointmentStatusCompleted, true
	case "Cancelled":
		return enum.AppointmentStatusCancelled, true
	case "NoShow":
		return enum.AppointmentStatusNoShow, true
	}
	return enum.AppointmentStatusScheduled, false
}

// Create handles booking an appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	input := &service.CreateAppointmentInput{
		UserID:         *userID,
		PatientID:      parseUUIDPtr(req.PatientID),
		PatientName:    req.PatientName,
		PatientContact: req.PatientContact,
		DoctorID:       doctorID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ManualAmount:   toCents(req.ManualAmount),
		Procedures:     procedureLinesFromRequest(req.Procedures),
	}

	for _, m := range req.FamilyMembers {
		input.FamilyMembers = append(input.FamilyMembers, service.FamilyMemberInput{
			PatientID:      parseUUIDPtr(m.PatientID),
			PatientName:    m.PatientName,
			PatientContact: m.PatientContact,
		})
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment booked successfully", appointment)
}

func procedureLinesFromRequest(lines []request.ProcedureLineRequest) []service.ProcedureLineInput {
	out := make([]service.ProcedureLineInput, 0, len(lines))
	for _, line := range lines {
		out = append(out, service.ProcedureLineInput{
			ProcedureID: parseUUIDPtr(line.ProcedureID),
			Name:        line.Name,
			Charge:      toCents(line.Charge),
		})
	}
	return out
}

// List handles listing appointments (supports both page-based and cursor-based pagination)
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		DoctorID:        parseUUIDPtr(filter.DoctorID),
		PatientID:       parseUUIDPtr(filter.PatientID),
		IncludeArchived: filter.IncludeArchived,
		SortBy:          filter.SortBy,
		SortOrder:       filter.SortOrder,
	}
	params.Pagination.Validate()

	if filter.Status != "" {
		if status, ok := parseAppointmentStatus(filter.Status); ok {
			params.Status = &status
		}
	}
	if start, err := parseDate(filter.StartDate); err == nil {
		params.StartDate = start
	}
	if end, err := parseDate(filter.EndDate); err == nil {
		params.EndDate = end
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// listWithCursor handles listing appointments with cursor-based pagination
func (h *AppointmentHandler) listWithCursor(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	params := &repository.AppointmentCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search:          filter.Search,
		DoctorID:        parseUUIDPtr(filter.DoctorID),
		IncludeArchived: filter.IncludeArchived,
	}
	params.Cursor.Validate()

	if filter.Status != "" {
		if status, ok := parseAppointmentStatus(filter.Status); ok {
			params.Status = &status
		}
	}
	if start, err := parseDate(filter.StartDate); err == nil {
		params.StartDate = start
	}
	if end, err := parseDate(filter.EndDate); err == nil {
		params.EndDate = end
	}

	result, err := h.appointmentService.ListAppointmentsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Appointments retrieved successfully", result)
}

// Get handles getting a single appointment with its procedures
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// GetDaySchedule handles getting the schedule for a calendar date
func (h *AppointmentHandler) GetDaySchedule(c *gin.Context) {
	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	appointments, err := h.appointmentService.GetDaySchedule(c.Request.Context(), date, parseUUIDPtr(c.Query("doctor_id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schedule retrieved successfully", gin.H{
		"date":         dateStr,
		"appointments": appointments,
	})
}

// Update handles updating an appointment
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateAppointmentInput{
		ID:             id,
		PatientName:    req.PatientName,
		PatientContact: req.PatientContact,
		ClearDate:      req.ClearDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ManualAmount:   toCentsPtr(req.ManualAmount),
	}

	if req.DoctorID != nil {
		doctorID, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			response.BadRequest(c, "Invalid doctor ID")
			return
		}
		input.DoctorID = &doctorID
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = date
	}
	if req.Procedures != nil {
		input.HasProcedures = true
		input.Procedures = procedureLinesFromRequest(*req.Procedures)
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment updated successfully", appointment)
}

// UpdateStatus handles status transitions
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := parseAppointmentStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown appointment status")
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment status updated successfully", appointment)
}

// MarkArrived handles flagging that the patient has arrived
func (h *AppointmentHandler) MarkArrived(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	if err := h.appointmentService.MarkArrived(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient marked as arrived", nil)
}

// RecordFeePayment handles collecting the appointment fee at the desk
func (h *AppointmentHandler) RecordFeePayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.RecordFeePayment(c.Request.Context(), id, userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment fee recorded successfully", appointment)
}

// RefundFee handles refunding a paid appointment fee
func (h *AppointmentHandler) RefundFee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.RefundFee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment fee refunded successfully", appointment)
}

// Delete handles deleting an appointment
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
