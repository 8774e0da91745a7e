package billing

import "github.com/clinicore/clinicore-api/internal/domain/enum"

// Round applies a rounding mode to a pre-rounding total and returns the
// rounded total plus the non-negative adjustment added to reach it.
//
// Numeric modes round up to the next multiple of the step, so for any
// total t >= 0 and step n: rounded % n == 0, rounded >= t and
// rounded - t < n. Rounding an already-rounded total of the same modulus
// is a no-op.
func Round(total int64, mode enum.RoundingMode) (rounded, adjustment int64) {
	step := mode.StepCents()
	if step <= 0 || total < 0 {
		return total, 0
	}

	remainder := total % step
	if remainder == 0 {
		return total, 0
	}

	rounded = total + step - remainder
	return rounded, rounded - total
}
