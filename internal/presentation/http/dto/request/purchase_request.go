package request

// PurchaseLineRequest is one line on a stock purchase. Unit cost is a
// decimal amount.
type PurchaseLineRequest struct {
	ItemID     string  `json:"item_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	UnitCost   float64 `json:"unit_cost" binding:"min=0"`
	BatchNo    string  `json:"batch_no"`
	ExpiryDate string  `json:"expiry_date"` // YYYY-MM-DD
}

// CreatePurchaseRequest represents a create stock purchase request
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier" binding:"required"`
	Date     string                `json:"date"` // YYYY-MM-DD, defaults to today
	Lines    []PurchaseLineRequest `json:"lines" binding:"required,min=1"`
}

// PurchaseFilterRequest represents stock purchase listing filters
type PurchaseFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	Supplier  string `form:"supplier"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
