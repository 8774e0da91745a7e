package request

// CreateProcedureRequest represents a create procedure request.
// Charges are decimal amounts.
type CreateProcedureRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code"`
	Charge       float64 `json:"charge" binding:"min=0"`
	DoctorCharge float64 `json:"doctor_charge" binding:"min=0"`
	Notes        *string `json:"notes"`
}

// UpdateProcedureRequest represents an update procedure request
type UpdateProcedureRequest struct {
	Name         *string  `json:"name"`
	Charge       *float64 `json:"charge"`
	DoctorCharge *float64 `json:"doctor_charge"`
	Notes        *string  `json:"notes"`
	IsActive     *bool    `json:"is_active"`
}

// CreateLabRequest represents a create lab request
type CreateLabRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
}

// UpdateLabRequest represents an update lab request
type UpdateLabRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	IsActive      *bool   `json:"is_active"`
}

// CreateLabTestRequest represents a create lab test request
type CreateLabTestRequest struct {
	LabID string  `json:"lab_id" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Code  string  `json:"code"`
	Price float64 `json:"price" binding:"min=0"`
}

// UpdateLabTestRequest represents an update lab test request
type UpdateLabTestRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"is_active"`
}
