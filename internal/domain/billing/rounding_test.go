package billing

import (
	"testing"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
)

func TestRound_Examples(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		mode           enum.RoundingMode
		wantRounded    int64
		wantAdjustment int64
	}{
		{"1370 up to 50", 137000, enum.RoundingModeUp50, 140000, 3000},
		{"1370 none", 137000, enum.RoundingModeNone, 137000, 0},
		{"1370 up to 10", 137000, enum.RoundingModeUp10, 137000, 0},
		{"1375 up to 10", 137550, enum.RoundingModeUp10, 138000, 450},
		{"1370 up to 20", 137000, enum.RoundingModeUp20, 138000, 1000},
		{"exact multiple of 50", 140000, enum.RoundingModeUp50, 140000, 0},
		{"zero total", 0, enum.RoundingModeUp50, 0, 0},
		{"one cent", 1, enum.RoundingModeUp10, 1000, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounded, adjustment := Round(tt.total, tt.mode)
			if rounded != tt.wantRounded {
				t.Errorf("rounded = %d, want %d", rounded, tt.wantRounded)
			}
			if adjustment != tt.wantAdjustment {
				t.Errorf("adjustment = %d, want %d", adjustment, tt.wantAdjustment)
			}
		})
	}
}

func TestRound_Properties(t *testing.T) {
	modes := []enum.RoundingMode{enum.RoundingModeUp10, enum.RoundingModeUp20, enum.RoundingModeUp50}
	totals := []int64{0, 1, 999, 1000, 1001, 4999, 5000, 137000, 137001, 999999}

	for _, mode := range modes {
		step := mode.StepCents()
		for _, total := range totals {
			rounded, adjustment := Round(total, mode)

			if rounded%step != 0 {
				t.Errorf("Round(%d, %s): %d not a multiple of %d", total, mode, rounded, step)
			}
			if rounded < total {
				t.Errorf("Round(%d, %s): rounded %d below total", total, mode, rounded)
			}
			if rounded-total >= step {
				t.Errorf("Round(%d, %s): adjustment %d >= step %d", total, mode, rounded-total, step)
			}
			if adjustment != rounded-total {
				t.Errorf("Round(%d, %s): adjustment %d != rounded-total %d", total, mode, adjustment, rounded-total)
			}
		}
	}
}

func TestRound_NoneIsIdentity(t *testing.T) {
	for _, total := range []int64{0, 1, 137000, 999999} {
		rounded, adjustment := Round(total, enum.RoundingModeNone)
		if rounded != total || adjustment != 0 {
			t.Errorf("Round(%d, none) = (%d, %d), want (%d, 0)", total, rounded, adjustment, total)
		}
	}
}

func TestRound_Idempotent(t *testing.T) {
	modes := []enum.RoundingMode{enum.RoundingModeUp10, enum.RoundingModeUp20, enum.RoundingModeUp50}
	for _, mode := range modes {
		rounded, _ := Round(137001, mode)
		again, adjustment := Round(rounded, mode)
		if again != rounded || adjustment != 0 {
			t.Errorf("re-rounding %d with %s changed it to %d (adj %d)", rounded, mode, again, adjustment)
		}
	}
}
