package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleItemKind identifies which billing category a sale line item belongs to
type SaleItemKind string

const (
	SaleItemKindProcedure      SaleItemKind = "procedure"
	SaleItemKindLabTest        SaleItemKind = "lab_test"
	SaleItemKindPharmacy       SaleItemKind = "pharmacy"
	SaleItemKindAppointmentFee SaleItemKind = "appointment_fee"
)

func (k SaleItemKind) String() string {
	return string(k)
}

func (k SaleItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *SaleItemKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = SaleItemKind(str)
	return nil
}

func (k SaleItemKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *SaleItemKind) Scan(value interface{}) error {
	if value == nil {
		*k = SaleItemKindProcedure
		return nil
	}
	switch v := value.(type) {
	case string:
		*k = SaleItemKind(v)
	case []byte:
		*k = SaleItemKind(string(v))
	}
	return nil
}
