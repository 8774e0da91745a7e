package entity

// ReceiptHeader holds the clinic header shown at the top of a receipt.
type ReceiptHeader struct {
	ClinicName string `json:"clinic_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a sale receipt.
// It is NOT a database entity; it is composed from sale data when the
// receipt is emailed or exported. The appointment fee line is present even
// when it was already paid elsewhere; AppointmentFeePaid marks it so the
// receipt can label it "already paid".
type Receipt struct {
	Header             ReceiptHeader `json:"header"`
	InvoiceNo          string        `json:"invoice_no"`
	Date               string        `json:"date"`
	Cashier            string        `json:"cashier,omitempty"`
	Patient            string        `json:"patient,omitempty"`
	SessionID          string        `json:"session_id,omitempty"`
	AppointmentNo      int           `json:"appointment_no,omitempty"`
	PaymentMethod      string        `json:"payment_method,omitempty"`
	Items              []ReceiptItem `json:"items"`
	AppointmentFeePaid bool          `json:"appointment_fee_paid"`
	SubTotal           float64       `json:"sub_total"`
	RoundingAdjustment float64       `json:"rounding_adjustment"`
	Total              float64       `json:"total"`
	Paid               float64       `json:"paid"`
	Due                float64       `json:"due"`
}
