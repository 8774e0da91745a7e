package entity

import (
	"encoding/json"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentPayment is the payment sub-record embedded in an appointment.
// SaleID links the appointment to the POS sale that settled it, if any.
type AppointmentPayment struct {
	IsPaid     bool       `gorm:"column:payment_is_paid;default:false" json:"is_paid"`
	Refunded   bool       `gorm:"column:payment_refunded;default:false" json:"refunded"`
	PaidBy     *string    `gorm:"column:payment_paid_by;size:255" json:"paid_by,omitempty"`
	SaleID     *uuid.UUID `gorm:"column:payment_sale_id;type:uuid" json:"sale_id,omitempty"`
	CardDetail *string    `gorm:"column:payment_card_detail;size:255" json:"card_detail,omitempty"`
}

// Appointment represents one scheduled visit of a patient to a doctor.
// StartTime and EndTime are stored as "HH:MM" strings and compared verbatim
// when grouping appointments into sessions.
type Appointment struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID       uuid.UUID              `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	PatientID      *uuid.UUID             `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName    string                 `gorm:"size:255;not null" json:"patient_name"`
	PatientContact string                 `gorm:"size:50" json:"patient_contact"`
	DoctorID       uuid.UUID              `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date           *time.Time             `gorm:"type:date;index" json:"date,omitempty"`
	StartTime      string                 `gorm:"size:10" json:"start_time"`
	EndTime        string                 `gorm:"size:10" json:"end_time"`
	DayOfWeek      string                 `gorm:"size:20" json:"day_of_week"`
	Status         enum.AppointmentStatus `gorm:"default:0;index" json:"status"`
	TotalCharge    int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ManualAmount   int64                  `gorm:"default:0" json:"-"` // Overrides TotalCharge for billing when > 0
	Payment        AppointmentPayment     `gorm:"embedded" json:"payment"`
	Arrived        bool                   `gorm:"default:false" json:"arrived"`
	Archived       bool                   `gorm:"default:false;index" json:"archived"`
	SessionID      string                 `gorm:"size:255;index" json:"session_id"`
	AppointmentNo  int                    `gorm:"default:0" json:"appointment_no"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	DeletedAt      gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Clinic        Clinic                 `gorm:"foreignKey:ClinicID" json:"-"`
	User          User                   `gorm:"foreignKey:UserID" json:"-"`
	Patient       *Patient               `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        Doctor                 `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Procedures    []AppointmentProcedure `gorm:"foreignKey:AppointmentID" json:"procedures,omitempty"`
	Prescriptions []Prescription         `gorm:"foreignKey:AppointmentID" json:"prescriptions,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a Appointment) MarshalJSON() ([]byte, error) {
	type Alias Appointment
	return json.Marshal(&struct {
		Alias
		TotalCharge  float64 `json:"total_charge"`
		ManualAmount float64 `json:"manual_amount"`
	}{
		Alias:        Alias(a),
		TotalCharge:  float64(a.TotalCharge) / 100,
		ManualAmount: float64(a.ManualAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// BillableAmount returns the amount billed for the visit: the manual amount
// when set and positive, otherwise the total charge.
func (a *Appointment) BillableAmount() int64 {
	if a.ManualAmount > 0 {
		return a.ManualAmount
	}
	return a.TotalCharge
}

// AppointmentProcedure represents a procedure attached to an appointment,
// with the charge and doctor portion frozen at booking time.
type AppointmentProcedure struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ProcedureID   *uuid.UUID     `gorm:"type:uuid;index" json:"procedure_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Charge        int64          `gorm:"not null" json:"-"` // Stored in cents
	DoctorCharge  int64          `gorm:"default:0" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Procedure   *Procedure  `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ap AppointmentProcedure) MarshalJSON() ([]byte, error) {
	type Alias AppointmentProcedure
	return json.Marshal(&struct {
		Alias
		Charge       float64 `json:"charge"`
		DoctorCharge float64 `json:"doctor_charge"`
	}{
		Alias:        Alias(ap),
		Charge:       float64(ap.Charge) / 100,
		DoctorCharge: float64(ap.DoctorCharge) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new appointment procedure
func (ap *AppointmentProcedure) BeforeCreate(tx *gorm.DB) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AppointmentProcedure model
func (AppointmentProcedure) TableName() string {
	return "appointment_procedures"
}
