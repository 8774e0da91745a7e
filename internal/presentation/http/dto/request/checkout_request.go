package request

// ProcedureCartRequest is a catalog procedure added to the cart
type ProcedureCartRequest struct {
	ProcedureID string `json:"procedure_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// LabTestCartRequest is a lab test added to the cart
type LabTestCartRequest struct {
	LabTestID    string `json:"lab_test_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	LabInvoiceNo string `json:"lab_invoice_no" binding:"required"`
}

// PharmacyCartRequest is a stock item added to the cart
type PharmacyCartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	BatchID  string `json:"batch_id"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents one POS checkout. Pay is a decimal amount,
// only meaningful for partial and credit payments.
type CheckoutRequest struct {
	AppointmentID  string `json:"appointment_id"`
	PatientID      string `json:"patient_id"`
	PatientName    string `json:"patient_name"`
	PatientContact string `json:"patient_contact"`

	Procedures []ProcedureCartRequest `json:"procedures"`
	LabTests   []LabTestCartRequest   `json:"lab_tests"`
	Pharmacy   []PharmacyCartRequest  `json:"pharmacy"`

	PrescriptionIDs []string `json:"prescription_ids"`

	PaymentMethod string  `json:"payment_method" binding:"required"`
	Pay           float64 `json:"pay"`
	CardDetail    *string `json:"card_detail"`

	ReceiptEmail string `json:"receipt_email"`
}

// PayDueRequest represents a follow-up payment against a due sale
type PayDueRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required"`
}

// SaleFilterRequest represents sale listing filters
type SaleFilterRequest struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Limit         int    `form:"limit"`
	Search        string `form:"search"`
	PaymentMethod string `form:"payment_method"`
	PatientID     string `form:"patient_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	OnlyDue       bool   `form:"only_due"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
}
