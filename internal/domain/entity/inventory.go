package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem represents a pharmacy stock item
type InventoryItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID        *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   int64          `gorm:"default:0" json:"-"` // Stored in cents
	SellingPrice  int64          `gorm:"default:0" json:"-"` // Stored in cents
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic   Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Category *ItemCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit         `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Batches  []Batch       `gorm:"foreignKey:ItemID" json:"batches,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type Alias InventoryItem
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(i),
		BuyingPrice:  float64(i.BuyingPrice) / 100,
		SellingPrice: float64(i.SellingPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the item quantity has fallen to its alert level
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.QuantityAlert
}

// ItemCategory represents an inventory item category
type ItemCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic          `gorm:"foreignKey:ClinicID" json:"-"`
	User   User            `gorm:"foreignKey:UserID" json:"-"`
	Items  []InventoryItem `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item category
func (c *ItemCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemCategory model
func (ItemCategory) TableName() string {
	return "item_categories"
}

// Unit represents a unit of measurement
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic          `gorm:"foreignKey:ClinicID" json:"-"`
	User   User            `gorm:"foreignKey:UserID" json:"-"`
	Items  []InventoryItem `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}

// Batch represents an expiry-tracked stock lot of an inventory item
type Batch struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ItemID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	BatchNo    string         `gorm:"size:100;not null" json:"batch_no"`
	ExpiryDate *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	Quantity   int            `gorm:"default:0" json:"quantity"`
	CostPrice  int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	Item   InventoryItem `gorm:"foreignKey:ItemID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Batch) MarshalJSON() ([]byte, error) {
	type Alias Batch
	return json.Marshal(&struct {
		Alias
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(b),
		CostPrice: float64(b.CostPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new batch
func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}

// IsExpired reports whether the batch has passed its expiry date
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(now)
}
