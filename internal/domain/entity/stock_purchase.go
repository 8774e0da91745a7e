package entity

import (
	"encoding/json"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockPurchase represents a pharmacy restock order placed with a supplier
type StockPurchase struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"clinic_id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Supplier    string              `gorm:"size:255" json:"supplier"`
	Date        time.Time           `gorm:"type:date;not null" json:"date"`
	PurchaseNo  string              `gorm:"size:100;unique;not null" json:"purchase_no"`
	Status      enum.PurchaseStatus `gorm:"default:0" json:"status"`
	TotalAmount int64               `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Clinic  Clinic                `gorm:"foreignKey:ClinicID" json:"-"`
	User    User                  `gorm:"foreignKey:UserID" json:"-"`
	Details []StockPurchaseDetail `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p StockPurchase) MarshalJSON() ([]byte, error) {
	type Alias StockPurchase
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(p),
		TotalAmount: float64(p.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new stock purchase
func (p *StockPurchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockPurchase model
func (StockPurchase) TableName() string {
	return "stock_purchases"
}

// StockPurchaseDetail represents a line item in a stock purchase
type StockPurchaseDetail struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ItemID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	BatchNo    string         `gorm:"size:100" json:"batch_no"`
	ExpiryDate *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitCost   int64          `gorm:"not null" json:"-"` // Stored in cents
	Total      int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchase StockPurchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Item     InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (pd StockPurchaseDetail) MarshalJSON() ([]byte, error) {
	type Alias StockPurchaseDetail
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(pd),
		UnitCost: float64(pd.UnitCost) / 100,
		Total:    float64(pd.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new stock purchase detail
func (pd *StockPurchaseDetail) BeforeCreate(tx *gorm.DB) error {
	if pd.ID == uuid.Nil {
		pd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockPurchaseDetail model
func (StockPurchaseDetail) TableName() string {
	return "stock_purchase_details"
}
