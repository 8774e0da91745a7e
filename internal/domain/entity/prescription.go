package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prescription represents a per-patient record tied to one appointment.
// An appointment booked for a family carries one prescription per patient;
// the parent appointment settles only when every prescription is paid.
type Prescription struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	AppointmentID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	PatientID      *uuid.UUID     `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName    string         `gorm:"size:255;not null" json:"patient_name"`
	PatientContact string         `gorm:"size:50" json:"patient_contact"`
	Notes          *string        `gorm:"type:text" json:"notes,omitempty"`
	Amount         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsPaid         bool           `gorm:"default:false;index" json:"is_paid"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	PaidThroughPOS bool           `gorm:"default:false" json:"paid_through_pos"`
	PaidBy         *string        `gorm:"size:255" json:"paid_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic      Clinic      `gorm:"foreignKey:ClinicID" json:"-"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Patient     *Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Prescription) MarshalJSON() ([]byte, error) {
	type Alias Prescription
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new prescription
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}
