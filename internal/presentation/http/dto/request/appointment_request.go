package request

// ProcedureLineRequest is one procedure attached at booking time. Either
// procedure_id references the catalog, or name/charge describe a one-off
// line. Charge is a decimal amount.
type ProcedureLineRequest struct {
	ProcedureID string  `json:"procedure_id"`
	Name        string  `json:"name"`
	Charge      float64 `json:"charge"`
}

// FamilyMemberRequest is an additional patient sharing the appointment
type FamilyMemberRequest struct {
	PatientID      string `json:"patient_id"`
	PatientName    string `json:"patient_name" binding:"required"`
	PatientContact string `json:"patient_contact"`
}

// CreateAppointmentRequest represents a booking request
type CreateAppointmentRequest struct {
	PatientID      string                 `json:"patient_id"`
	PatientName    string                 `json:"patient_name" binding:"required"`
	PatientContact string                 `json:"patient_contact"`
	DoctorID       string                 `json:"doctor_id" binding:"required"`
	Date           string                 `json:"date"` // YYYY-MM-DD, empty for undated bookings
	StartTime      string                 `json:"start_time"`
	EndTime        string                 `json:"end_time"`
	ManualAmount   float64                `json:"manual_amount"`
	Procedures     []ProcedureLineRequest `json:"procedures"`
	FamilyMembers  []FamilyMemberRequest  `json:"family_members"`
}

// UpdateAppointmentRequest represents an appointment update request.
// Nil fields are left unchanged; clear_date removes the date entirely.
type UpdateAppointmentRequest struct {
	PatientName    *string                 `json:"patient_name"`
	PatientContact *string                 `json:"patient_contact"`
	DoctorID       *string                 `json:"doctor_id"`
	Date           *string                 `json:"date"`
	ClearDate      bool                    `json:"clear_date"`
	StartTime      *string                 `json:"start_time"`
	EndTime        *string                 `json:"end_time"`
	ManualAmount   *float64                `json:"manual_amount"`
	Procedures     *[]ProcedureLineRequest `json:"procedures"`
}

// UpdateAppointmentStatusRequest represents a status transition request
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentFilterRequest represents appointment listing filters
type AppointmentFilterRequest struct {
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
	Limit           int    `form:"limit"`
	Search          string `form:"search"`
	Status          string `form:"status"`
	DoctorID        string `form:"doctor_id"`
	PatientID       string `form:"patient_id"`
	StartDate       string `form:"start_date"`
	EndDate         string `form:"end_date"`
	IncludeArchived bool   `form:"include_archived"`
	SortBy          string `form:"sort_by"`
	SortOrder       string `form:"sort_order"`
}
