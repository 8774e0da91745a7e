package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/request"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// ProcedureHandler handles procedure catalog HTTP requests
type ProcedureHandler struct {
	procedureService *service.ProcedureService
}

// NewProcedureHandler creates a new procedure handler
func NewProcedureHandler(procedureService *service.ProcedureService) *ProcedureHandler {
	return &ProcedureHandler{procedureService: procedureService}
}

// Create handles adding a procedure to the catalog
func (h *ProcedureHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	procedure, err := h.procedureService.CreateProcedure(c.Request.Context(), &service.CreateProcedureInput{
		UserID:       *userID,
		Name:         req.Name,
		Code:         req.Code,
		Charge:       toCents(req.Charge),
		DoctorCharge: toCents(req.DoctorCharge),
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Procedure created successfully", procedure)
}

// List handles listing procedures
func (h *ProcedureHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.procedureService.ListProcedures(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Procedures retrieved successfully", result)
}

// Get handles getting a single procedure
func (h *ProcedureHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	procedure, err := h.procedureService.GetProcedure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procedure retrieved successfully", procedure)
}

// Update handles updating a procedure
func (h *ProcedureHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	var req request.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	procedure, err := h.procedureService.UpdateProcedure(c.Request.Context(), &service.UpdateProcedureInput{
		ID:           id,
		Name:         req.Name,
		Charge:       toCentsPtr(req.Charge),
		DoctorCharge: toCentsPtr(req.DoctorCharge),
		Notes:        req.Notes,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procedure updated successfully", procedure)
}

// Delete handles removing a procedure from the catalog
func (h *ProcedureHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	if err := h.procedureService.DeleteProcedure(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LabHandler handles external lab HTTP requests
type LabHandler struct {
	labService *service.LabService
}

// NewLabHandler creates a new lab handler
func NewLabHandler(labService *service.LabService) *LabHandler {
	return &LabHandler{labService: labService}
}

// Create handles registering an external lab
func (h *LabHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lab, err := h.labService.CreateLab(c.Request.Context(), &service.CreateLabInput{
		UserID:        *userID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lab created successfully", lab)
}

// List handles listing labs
func (h *LabHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.labService.ListLabs(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Labs retrieved successfully", result)
}

// Get handles getting a single lab
func (h *LabHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab ID")
		return
	}

	lab, err := h.labService.GetLab(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab retrieved successfully", lab)
}

// Update handles updating a lab
func (h *LabHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab ID")
		return
	}

	var req request.UpdateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lab, err := h.labService.UpdateLab(c.Request.Context(), &service.UpdateLabInput{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab updated successfully", lab)
}

// Delete handles removing a lab
func (h *LabHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab ID")
		return
	}

	if err := h.labService.DeleteLab(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetTests handles listing the tests offered through a lab
func (h *LabHandler) GetTests(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab ID")
		return
	}

	tests, err := h.labService.GetLabTests(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab tests retrieved successfully", gin.H{
		"tests": tests,
	})
}

// ListTests handles listing lab tests across all labs
func (h *LabHandler) ListTests(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.labService.ListLabTests(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Lab tests retrieved successfully", result)
}

// CreateTest handles adding a test to a lab's catalog
func (h *LabHandler) CreateTest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	labID, err := uuid.Parse(req.LabID)
	if err != nil {
		response.BadRequest(c, "Invalid lab ID")
		return
	}

	test, err := h.labService.CreateLabTest(c.Request.Context(), &service.CreateLabTestInput{
		UserID: *userID,
		LabID:  labID,
		Name:   req.Name,
		Code:   req.Code,
		Price:  toCents(req.Price),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lab test created successfully", test)
}

// UpdateTest handles updating a lab test
func (h *LabHandler) UpdateTest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab test ID")
		return
	}

	var req request.UpdateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	test, err := h.labService.UpdateLabTest(c.Request.Context(), &service.UpdateLabTestInput{
		ID:       id,
		Name:     req.Name,
		Price:    toCentsPtr(req.Price),
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lab test updated successfully", test)
}

// DeleteTest handles removing a lab test
func (h *LabHandler) DeleteTest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lab test ID")
		return
	}

	if err := h.labService.DeleteLabTest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
