package request

// CreateClinicRequest represents a create clinic request
type CreateClinicRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Slug string `json:"slug"`
}

// UpdateClinicRequest represents an update clinic request
type UpdateClinicRequest struct {
	Name *string `json:"name"`
}

// UpdateClinicSettingsRequest represents a clinic settings update.
// Omitted fields fall back to their defaults.
type UpdateClinicSettingsRequest struct {
	LogoURL            string `json:"logo_url"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Currency           string `json:"currency"`
	CurrencySymbol     string `json:"currency_symbol"`
	Timezone           string `json:"timezone"`
	DateFormat         string `json:"date_format"`
	InvoicePrefix      string `json:"invoice_prefix"`
	RoundingMode       string `json:"rounding_mode"`
	MinPartialPercent  int    `json:"min_partial_percent"`
	SlotCapacity       int    `json:"slot_capacity"`
	EmailNotifications bool   `json:"email_notifications"`
	WebhookURL         string `json:"webhook_url"`
}

// InviteMemberRequest represents a member invitation request
type InviteMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

// UpdateMemberRoleRequest represents a member role change request
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
