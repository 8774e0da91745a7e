package billing

import "testing"

func TestAggregate_CategorySubtotals(t *testing.T) {
	in := BillInput{
		Procedures: []ProcedureLine{
			{Charge: 50000, Quantity: 2},  // 1000.00
			{Charge: 25000, Quantity: 1},  // 250.00
		},
		AppointmentProcedures: []AppointmentProcedureLine{
			{DoctorCharge: 30000},
			{DoctorCharge: 20000},
		},
		LabTests: []LabTestLine{
			{Price: 15000, Quantity: 2}, // 300.00
		},
		Pharmacy: []PharmacyLine{
			{TotalPrice: 12050},
			{TotalPrice: 7950},
		},
		AppointmentFee: 150000,
	}

	got := Aggregate(in)

	if got.ProceduresTotal != 125000 {
		t.Errorf("ProceduresTotal = %d, want 125000", got.ProceduresTotal)
	}
	if got.ApptProceduresTotal != 50000 {
		t.Errorf("ApptProceduresTotal = %d, want 50000", got.ApptProceduresTotal)
	}
	if got.LabTestsTotal != 30000 {
		t.Errorf("LabTestsTotal = %d, want 30000", got.LabTestsTotal)
	}
	if got.PharmacyTotal != 20000 {
		t.Errorf("PharmacyTotal = %d, want 20000", got.PharmacyTotal)
	}
	if want := int64(125000 + 50000 + 30000 + 20000 + 150000); got.PreRoundingTotal != want {
		t.Errorf("PreRoundingTotal = %d, want %d", got.PreRoundingTotal, want)
	}
}

func TestAggregate_FeeExcludedWhenAlreadyPaid(t *testing.T) {
	in := BillInput{
		Pharmacy:       []PharmacyLine{{TotalPrice: 50000}},
		AppointmentFee: 150000,
		FeeAlreadyPaid: true,
	}

	got := Aggregate(in)

	if got.PreRoundingTotal != 50000 {
		t.Errorf("PreRoundingTotal = %d, want 50000 (fee excluded)", got.PreRoundingTotal)
	}
	// The fee is still carried on the totals for receipt display.
	if got.AppointmentFee != 150000 {
		t.Errorf("AppointmentFee = %d, want 150000", got.AppointmentFee)
	}
	if !got.FeeAlreadyPaid {
		t.Error("FeeAlreadyPaid flag should be carried through")
	}
}

func TestAggregate_FeeIncludedWhenNotAlreadyPaid(t *testing.T) {
	in := BillInput{
		AppointmentFee: 150000,
	}

	got := Aggregate(in)
	if got.PreRoundingTotal != 150000 {
		t.Errorf("PreRoundingTotal = %d, want 150000", got.PreRoundingTotal)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(BillInput{})
	if got.PreRoundingTotal != 0 {
		t.Errorf("empty bill should total 0, got %d", got.PreRoundingTotal)
	}
}
