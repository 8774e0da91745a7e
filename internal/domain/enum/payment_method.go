package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale is settled at checkout
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodFree    PaymentMethod = "free"
	PaymentMethodPartial PaymentMethod = "partial"
	PaymentMethodCredit  PaymentMethod = "credit"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsDeferred reports whether the method leaves a due balance to be collected
// through later payments.
func (m PaymentMethod) IsDeferred() bool {
	return m == PaymentMethodPartial || m == PaymentMethodCredit
}

// IsValid reports whether the method is one of the accepted values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodFree, PaymentMethodPartial, PaymentMethodCredit:
		return true
	}
	return false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
