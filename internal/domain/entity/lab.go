package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lab represents an external laboratory the clinic sends tests to
type Lab struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	ContactPerson *string        `gorm:"size:255" json:"contact_person,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic    `gorm:"foreignKey:ClinicID" json:"-"`
	User   User      `gorm:"foreignKey:UserID" json:"-"`
	Tests  []LabTest `gorm:"foreignKey:LabID" json:"tests,omitempty"`
}

// BeforeCreate generates a UUID before creating a new lab
func (l *Lab) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lab model
func (Lab) TableName() string {
	return "labs"
}

// LabTest represents a test offered through a lab
type LabTest struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	LabID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"lab_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:100;not null" json:"code"`
	Price     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	Lab    Lab    `gorm:"foreignKey:LabID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t LabTest) MarshalJSON() ([]byte, error) {
	type Alias LabTest
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(t),
		Price: float64(t.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new lab test
func (t *LabTest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LabTest model
func (LabTest) TableName() string {
	return "lab_tests"
}
