package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clinic represents a clinic in the multitenant system
type Clinic struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  ClinicSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User               `gorm:"foreignKey:OwnerID" json:"-"`
	Members []ClinicMembership `gorm:"foreignKey:ClinicID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new clinic
func (c *Clinic) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// ClinicMembership represents a staff member's membership in a clinic
type ClinicMembership struct {
	ClinicID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"clinic_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (cm *ClinicMembership) PopulateUserDetails() {
	if cm.User.ID != uuid.Nil {
		cm.MemberUser = &MemberUser{
			ID:        cm.User.ID,
			FirstName: cm.User.FirstName,
			LastName:  cm.User.LastName,
			Email:     cm.User.Email,
		}
	}
}

// TableName returns the table name for the ClinicMembership model
func (ClinicMembership) TableName() string {
	return "clinic_memberships"
}

// ClinicSettings holds all customizable clinic configurations
type ClinicSettings struct {
	// Contact & branding
	LogoURL string `json:"logo_url,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// Localization
	Currency       string `json:"currency,omitempty"`
	CurrencySymbol string `json:"currency_symbol,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	DateFormat     string `json:"date_format,omitempty"`

	// Billing configuration
	InvoicePrefix string            `json:"invoice_prefix,omitempty"`
	RoundingMode  enum.RoundingMode `json:"rounding_mode,omitempty"`
	// MinPartialPercent is the minimum initial payment for partial/credit
	// sales, as a percentage of the bill total.
	MinPartialPercent int `json:"min_partial_percent,omitempty"`

	// Appointment configuration
	SlotCapacity int `json:"slot_capacity,omitempty"` // max patients per session, 0 = unlimited

	// Notification settings
	EmailNotifications bool   `json:"email_notifications,omitempty"`
	WebhookURL         string `json:"webhook_url,omitempty"`

	// Feature flags
	Features ClinicFeatures `json:"features,omitempty"`
}

// Scan implements the sql.Scanner interface for ClinicSettings
func (cs *ClinicSettings) Scan(value interface{}) error {
	if value == nil {
		*cs = ClinicSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ClinicSettings: unsupported type")
	}

	return json.Unmarshal(bytes, cs)
}

// Value implements the driver.Valuer interface for ClinicSettings
func (cs ClinicSettings) Value() (driver.Value, error) {
	return json.Marshal(cs)
}

// ClinicFeatures holds feature flags for a clinic
type ClinicFeatures struct {
	EnablePharmacy  bool `json:"pharmacy"`
	EnableLabs      bool `json:"labs"`
	EnableReports   bool `json:"reports"`
	EnableLiveFeed  bool `json:"live_feed"`
	EnableMultiUser bool `json:"multi_user"`
}

// DefaultClinicSettings returns default settings for new clinics
func DefaultClinicSettings() ClinicSettings {
	return ClinicSettings{
		Currency:           "LKR",
		CurrencySymbol:     "Rs",
		Timezone:           "Asia/Colombo",
		DateFormat:         "YYYY-MM-DD",
		InvoicePrefix:      "INV-",
		RoundingMode:       enum.RoundingModeNone,
		MinPartialPercent:  25,
		EmailNotifications: true,
		Features: ClinicFeatures{
			EnablePharmacy:  true,
			EnableLabs:      true,
			EnableReports:   true,
			EnableLiveFeed:  true,
			EnableMultiUser: true,
		},
	}
}
