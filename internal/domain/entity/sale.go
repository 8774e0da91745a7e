package entity

import (
	"encoding/json"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a completed POS checkout.
// All amounts are stored in cents. SubTotal is the pre-rounding total;
// Total = SubTotal + RoundingAdjustment, except for the "free" method where
// Total is forced to 0 and the original amount is kept in OriginalTotal.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	AppointmentID  *uuid.UUID         `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	PatientID      *uuid.UUID         `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName    string             `gorm:"size:255;not null" json:"patient_name"`
	PatientContact string             `gorm:"size:50" json:"patient_contact"`
	SaleDate       time.Time          `gorm:"type:date;not null" json:"sale_date"`
	InvoiceNo      string             `gorm:"size:100;unique;not null" json:"invoice_no"`

	ProceduresTotal     int64 `gorm:"default:0" json:"-"`
	ApptProceduresTotal int64 `gorm:"default:0" json:"-"`
	LabTestsTotal       int64 `gorm:"default:0" json:"-"`
	PharmacyTotal       int64 `gorm:"default:0" json:"-"`
	AppointmentFee      int64 `gorm:"default:0" json:"-"`
	FeeAlreadyPaid      bool  `gorm:"default:false" json:"fee_already_paid"`

	SubTotal           int64             `gorm:"default:0" json:"-"` // pre-rounding total
	RoundingMode       enum.RoundingMode `gorm:"size:10;default:'none'" json:"rounding_mode"`
	RoundingAdjustment int64             `gorm:"default:0" json:"-"`
	Total              int64             `gorm:"default:0" json:"-"`
	OriginalTotal      int64             `gorm:"default:0" json:"-"` // preserved amount for free sales

	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	CardDetail    *string            `gorm:"size:255" json:"card_detail,omitempty"`
	Pay           int64              `gorm:"default:0" json:"-"` // initial payment
	Due           int64              `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic      Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	User        User          `gorm:"foreignKey:UserID" json:"-"`
	Appointment *Appointment  `gorm:"foreignKey:AppointmentID" json:"-"`
	Patient     *Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items       []SaleItem    `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments    []SalePayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		ProceduresTotal     float64 `json:"procedures_total"`
		ApptProceduresTotal float64 `json:"appointment_procedures_total"`
		LabTestsTotal       float64 `json:"lab_tests_total"`
		PharmacyTotal       float64 `json:"pharmacy_total"`
		AppointmentFee      float64 `json:"appointment_fee"`
		SubTotal            float64 `json:"sub_total"`
		RoundingAdjustment  float64 `json:"rounding_adjustment"`
		Total               float64 `json:"total"`
		OriginalTotal       float64 `json:"original_total"`
		Pay                 float64 `json:"pay"`
		Due                 float64 `json:"due"`
	}{
		Alias:               Alias(s),
		ProceduresTotal:     float64(s.ProceduresTotal) / 100,
		ApptProceduresTotal: float64(s.ApptProceduresTotal) / 100,
		LabTestsTotal:       float64(s.LabTestsTotal) / 100,
		PharmacyTotal:       float64(s.PharmacyTotal) / 100,
		AppointmentFee:      float64(s.AppointmentFee) / 100,
		SubTotal:            float64(s.SubTotal) / 100,
		RoundingAdjustment:  float64(s.RoundingAdjustment) / 100,
		Total:               float64(s.Total) / 100,
		OriginalTotal:       float64(s.OriginalTotal) / 100,
		Pay:                 float64(s.Pay) / 100,
		Due:                 float64(s.Due) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsSettled reports whether the sale has no outstanding due balance
func (s *Sale) IsSettled() bool {
	return s.Due <= 0
}

// SaleItem represents a line item on a sale
type SaleItem struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"sale_id"`
	Kind         enum.SaleItemKind `gorm:"size:30;not null" json:"kind"`
	RefID        *uuid.UUID        `gorm:"type:uuid;index" json:"ref_id,omitempty"` // procedure/lab test/inventory item id
	BatchID      *uuid.UUID        `gorm:"type:uuid" json:"batch_id,omitempty"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	UnitPrice    int64             `gorm:"not null" json:"-"` // Stored in cents
	Total        int64             `gorm:"not null" json:"-"` // Stored in cents
	LabInvoiceNo *string           `gorm:"size:100" json:"lab_invoice_no,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SalePayment represents one entry in the payment history of a partial or
// credit sale
type SalePayment struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	Amount     int64              `gorm:"not null" json:"-"` // Stored in cents
	Method     enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	ReceivedBy *string            `gorm:"size:255" json:"received_by,omitempty"`
	PaidAt     time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time          `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (sp SalePayment) MarshalJSON() ([]byte, error) {
	type Alias SalePayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(sp),
		Amount: float64(sp.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale payment
func (sp *SalePayment) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalePayment model
func (SalePayment) TableName() string {
	return "sale_payments"
}
