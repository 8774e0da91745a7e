package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor represents a consulting doctor attached to the clinic
type Doctor struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Specialty      *string        `gorm:"size:255" json:"specialty,omitempty"`
	Email          *string        `gorm:"size:255" json:"email,omitempty"`
	Phone          *string        `gorm:"size:50" json:"phone,omitempty"`
	RegistrationNo *string        `gorm:"size:100" json:"registration_no,omitempty"`
	ChannelingFee  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Doctor) MarshalJSON() ([]byte, error) {
	type Alias Doctor
	return json.Marshal(&struct {
		Alias
		ChannelingFee float64 `json:"channeling_fee"`
	}{
		Alias:         Alias(d),
		ChannelingFee: float64(d.ChannelingFee) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new doctor
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
