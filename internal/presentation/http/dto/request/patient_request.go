package request

// CreatePatientRequest represents a create patient request
type CreatePatientRequest struct {
	Name      string  `json:"name" binding:"required"`
	Contact   string  `json:"contact"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	Gender    *string `json:"gender"`
	Allergies *string `json:"allergies"`
	Notes     *string `json:"notes"`
}

// UpdatePatientRequest represents an update patient request
type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Contact   *string `json:"contact"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
	Allergies *string `json:"allergies"`
	Notes     *string `json:"notes"`
}

// CreateDoctorRequest represents a create doctor request. The channeling
// fee is a decimal amount.
type CreateDoctorRequest struct {
	Name           string  `json:"name" binding:"required"`
	Specialty      *string `json:"specialty"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	RegistrationNo *string `json:"registration_no"`
	ChannelingFee  float64 `json:"channeling_fee" binding:"min=0"`
}

// UpdateDoctorRequest represents an update doctor request
type UpdateDoctorRequest struct {
	Name           *string  `json:"name"`
	Specialty      *string  `json:"specialty"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	RegistrationNo *string  `json:"registration_no"`
	ChannelingFee  *float64 `json:"channeling_fee"`
	IsActive       *bool    `json:"is_active"`
}
