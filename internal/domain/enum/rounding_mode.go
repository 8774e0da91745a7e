package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RoundingMode controls how a bill total is rounded up at checkout.
// The numeric modes round up to the nearest 10, 20 or 50 currency units.
type RoundingMode string

const (
	RoundingModeNone RoundingMode = "none"
	RoundingModeUp10 RoundingMode = "10"
	RoundingModeUp20 RoundingMode = "20"
	RoundingModeUp50 RoundingMode = "50"
)

func (m RoundingMode) String() string {
	return string(m)
}

// StepCents returns the rounding step in cents, or 0 for RoundingModeNone.
func (m RoundingMode) StepCents() int64 {
	switch m {
	case RoundingModeUp10:
		return 10 * 100
	case RoundingModeUp20:
		return 20 * 100
	case RoundingModeUp50:
		return 50 * 100
	}
	return 0
}

// IsValid reports whether the mode is one of the accepted values.
func (m RoundingMode) IsValid() bool {
	switch m {
	case RoundingModeNone, RoundingModeUp10, RoundingModeUp20, RoundingModeUp50:
		return true
	}
	return false
}

func (m RoundingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *RoundingMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = RoundingMode(str)
	return nil
}

func (m RoundingMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *RoundingMode) Scan(value interface{}) error {
	if value == nil {
		*m = RoundingModeNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = RoundingMode(v)
	case []byte:
		*m = RoundingMode(string(v))
	}
	return nil
}
