package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a registered patient of the clinic
type Patient struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Contact   string         `gorm:"size:50;not null;index" json:"contact"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Gender    *string        `gorm:"size:20" json:"gender,omitempty"`
	BirthDate *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Allergies *string        `gorm:"type:text" json:"allergies,omitempty"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Sales        []Sale        `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}
