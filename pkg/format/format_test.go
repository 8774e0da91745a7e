package format

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{137000, "1,370.00"},
		{137550, "1,375.50"},
		{100000000, "1,000,000.00"},
		{-250000, "-2,500.00"},
	}

	for _, tt := range tests {
		if got := Amount(tt.cents); got != tt.want {
			t.Errorf("Amount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestAmountWithSymbol(t *testing.T) {
	if got := AmountWithSymbol("Rs", 137000); got != "Rs 1,370.00" {
		t.Errorf("got %q", got)
	}
	if got := AmountWithSymbol("", 137000); got != "1,370.00" {
		t.Errorf("empty symbol should not leave a leading space, got %q", got)
	}
}

func TestTime12h(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:05", "9:05 AM"},
		{"12:00", "12:00 PM"},
		{"14:30", "2:30 PM"},
		{"23:59", "11:59 PM"},
		{"", ""},
		{"no-time", "no-time"},
		{"25:00", "25:00"},
	}

	for _, tt := range tests {
		if got := Time12h(tt.in); got != tt.want {
			t.Errorf("Time12h(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
