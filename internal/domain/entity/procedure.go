package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure represents a billable clinical procedure in the catalog
type Procedure struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Code         string         `gorm:"size:100;unique;not null" json:"code"`
	Charge       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DoctorCharge int64          `gorm:"default:0" json:"-"` // Doctor's portion in cents
	Notes        *string        `gorm:"type:text" json:"notes,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Procedure) MarshalJSON() ([]byte, error) {
	type Alias Procedure
	return json.Marshal(&struct {
		Alias
		Charge       float64 `json:"charge"`
		DoctorCharge float64 `json:"doctor_charge"`
	}{
		Alias:        Alias(p),
		Charge:       float64(p.Charge) / 100,
		DoctorCharge: float64(p.DoctorCharge) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new procedure
func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Procedure model
func (Procedure) TableName() string {
	return "procedures"
}
