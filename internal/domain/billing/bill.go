package billing

// ProcedureLine is a procedure selected at checkout.
type ProcedureLine struct {
	Charge   int64 // cents
	Quantity int
}

// LabTestLine is a lab test selected at checkout.
type LabTestLine struct {
	Price    int64 // cents
	Quantity int
}

// PharmacyLine is a pharmacy cart line with its total already computed.
type PharmacyLine struct {
	TotalPrice int64 // cents
}

// AppointmentProcedureLine is a procedure carried over from the appointment,
// billed at the doctor's charge.
type AppointmentProcedureLine struct {
	DoctorCharge int64 // cents
}

// BillInput is everything the aggregator needs to compute a bill.
type BillInput struct {
	Procedures            []ProcedureLine
	AppointmentProcedures []AppointmentProcedureLine
	LabTests              []LabTestLine
	Pharmacy              []PharmacyLine

	// AppointmentFee is the manual appointment fee in cents.
	AppointmentFee int64
	// FeeAlreadyPaid excludes the appointment fee from the payable total
	// when the fee was settled in the appointments module. The fee still
	// appears on the itemized receipt.
	FeeAlreadyPaid bool
}

// BillTotals holds the category subtotals and the pre-rounding grand total.
type BillTotals struct {
	ProceduresTotal     int64
	ApptProceduresTotal int64
	LabTestsTotal       int64
	PharmacyTotal       int64
	AppointmentFee      int64
	FeeAlreadyPaid      bool

	// PreRoundingTotal is the payable total before the rounding policy is
	// applied. It excludes AppointmentFee when FeeAlreadyPaid is set.
	PreRoundingTotal int64
}

// Aggregate computes category subtotals and the pre-rounding total for a
// checkout. Totals are never negative for non-negative inputs.
func Aggregate(in BillInput) BillTotals {
	t := BillTotals{
		AppointmentFee: in.AppointmentFee,
		FeeAlreadyPaid: in.FeeAlreadyPaid,
	}

	for _, p := range in.Procedures {
		t.ProceduresTotal += p.Charge * int64(p.Quantity)
	}
	for _, ap := range in.AppointmentProcedures {
		t.ApptProceduresTotal += ap.DoctorCharge
	}
	for _, lt := range in.LabTests {
		t.LabTestsTotal += lt.Price * int64(lt.Quantity)
	}
	for _, ph := range in.Pharmacy {
		t.PharmacyTotal += ph.TotalPrice
	}

	t.PreRoundingTotal = t.ProceduresTotal + t.ApptProceduresTotal + t.LabTestsTotal + t.PharmacyTotal
	if !in.FeeAlreadyPaid {
		t.PreRoundingTotal += in.AppointmentFee
	}

	return t
}
