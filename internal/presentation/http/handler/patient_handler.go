package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/request"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create handles registering a patient
func (h *PatientHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		response.BadRequest(c, "Invalid birth date, expected YYYY-MM-DD")
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), &service.CreatePatientInput{
		UserID:    *userID,
		Name:      req.Name,
		Contact:   req.Contact,
		Email:     req.Email,
		Address:   req.Address,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Allergies: req.Allergies,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient registered successfully", patient)
}

// List handles listing patients (supports both page-based and cursor-based pagination)
func (h *PatientHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	search := c.Query("search")

	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		var params pagination.CursorParams
		if err := c.ShouldBindQuery(&params); err != nil {
			response.BadRequest(c, "Invalid query parameters")
			return
		}
		params.Validate()

		result, err := h.patientService.ListPatientsWithCursor(c.Request.Context(), &params, search)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, 200, "Patients retrieved successfully", result)
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.patientService.ListPatients(c.Request.Context(), &params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Patients retrieved successfully", result)
}

// Get handles getting a single patient
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// FindByContact handles looking a patient up by contact number
func (h *PatientHandler) FindByContact(c *gin.Context) {
	contact := c.Query("contact")
	if contact == "" {
		response.BadRequest(c, "Contact number is required")
		return
	}

	patient, err := h.patientService.FindPatientByContact(c.Request.Context(), contact)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// Update handles updating a patient
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req request.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdatePatientInput{
		ID:        id,
		Name:      req.Name,
		Contact:   req.Contact,
		Email:     req.Email,
		Address:   req.Address,
		Gender:    req.Gender,
		Allergies: req.Allergies,
		Notes:     req.Notes,
	}

	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			response.BadRequest(c, "Invalid birth date, expected YYYY-MM-DD")
			return
		}
		input.BirthDate = birthDate
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated successfully", patient)
}

// Delete handles deleting a patient
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DoctorHandler handles doctor-related HTTP requests
type DoctorHandler struct {
	doctorService *service.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// Create handles adding a doctor
func (h *DoctorHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), &service.CreateDoctorInput{
		UserID:         *userID,
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		RegistrationNo: req.RegistrationNo,
		ChannelingFee:  toCents(req.ChannelingFee),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Doctor created successfully", doctor)
}

// List handles listing doctors
func (h *DoctorHandler) List(c *gin.Context) {
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

	result, err := h.doctorService.ListDoctors(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Doctors retrieved successfully", result)
}

// ListActive handles listing doctors available for scheduling
func (h *DoctorHandler) ListActive(c *gin.Context) {
	doctors, err := h.doctorService.ListActiveDoctors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active doctors retrieved successfully", gin.H{
		"doctors": doctors,
	})
}

// Get handles getting a single doctor
func (h *DoctorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Doctor retrieved successfully", doctor)
}

// Update handles updating a doctor
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	var req request.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Request.Context(), &service.UpdateDoctorInput{
		ID:             id,
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		RegistrationNo: req.RegistrationNo,
		ChannelingFee:  toCentsPtr(req.ChannelingFee),
		IsActive:       req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Doctor updated successfully", doctor)
}

// Delete handles deleting a doctor
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	if err := h.doctorService.DeleteDoctor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
