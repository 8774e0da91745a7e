package request

// CreateItemRequest represents a create inventory item request.
// Prices are decimal amounts.
type CreateItemRequest struct {
	CategoryID    string  `json:"category_id"`
	UnitID        string  `json:"unit_id"`
	Name          string  `json:"name" binding:"required"`
	Code          string  `json:"code"`
	Quantity      int     `json:"quantity"`
	QuantityAlert int     `json:"quantity_alert"`
	BuyingPrice   float64 `json:"buying_price"`
	SellingPrice  float64 `json:"selling_price"`
	Notes         *string `json:"notes"`
}

// UpdateItemRequest represents an update inventory item request.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	CategoryID    *string  `json:"category_id"`
	UnitID        *string  `json:"unit_id"`
	Name          *string  `json:"name"`
	Code          *string  `json:"code"`
	QuantityAlert *int     `json:"quantity_alert"`
	BuyingPrice   *float64 `json:"buying_price"`
	SellingPrice  *float64 `json:"selling_price"`
	Notes         *string  `json:"notes"`
	IsActive      *bool    `json:"is_active"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// InventoryFilterRequest represents inventory listing filters
type InventoryFilterRequest struct {
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	UnitID     string `form:"unit_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}

// ImportItemRowRequest is a single row from an inventory import payload
type ImportItemRowRequest struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Quantity      int     `json:"quantity"`
	QuantityAlert int     `json:"quantity_alert"`
	BuyingPrice   float64 `json:"buying_price"`
	SellingPrice  float64 `json:"selling_price"`
	Notes         string  `json:"notes"`
	CategoryName  string  `json:"category_name"`
	UnitName      string  `json:"unit_name"`
}

// ImportItemsRequest represents a bulk inventory import request
type ImportItemsRequest struct {
	Items []ImportItemRowRequest `json:"items" binding:"required,min=1"`
}
