package billing

import "testing"

func TestAllPaid(t *testing.T) {
	tests := []struct {
		name          string
		prescriptions []PrescriptionState
		want          bool
	}{
		{"empty", nil, true},
		{"single paid", []PrescriptionState{{ID: "p1", IsPaid: true}}, true},
		{"single unpaid", []PrescriptionState{{ID: "p1"}}, false},
		{"all paid", []PrescriptionState{{ID: "p1", IsPaid: true}, {ID: "p2", IsPaid: true}}, true},
		{"one unpaid", []PrescriptionState{{ID: "p1", IsPaid: true}, {ID: "p2"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllPaid(tt.prescriptions); got != tt.want {
				t.Errorf("AllPaid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldArchive(t *testing.T) {
	tests := []struct {
		name          string
		prescriptions []PrescriptionState
		want          bool
	}{
		{"no prescriptions settles directly", nil, true},
		{"one prescription settles on it", []PrescriptionState{{ID: "p1", IsPaid: true}}, true},
		{"one unpaid prescription still single-patient path", []PrescriptionState{{ID: "p1"}}, true},
		{"two paid", []PrescriptionState{{ID: "p1", IsPaid: true}, {ID: "p2", IsPaid: true}}, true},
		{"two with one unpaid", []PrescriptionState{{ID: "p1", IsPaid: true}, {ID: "p2"}}, false},
		{"three with one unpaid", []PrescriptionState{
			{ID: "p1", IsPaid: true}, {ID: "p2"}, {ID: "p3", IsPaid: true},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldArchive(tt.prescriptions); got != tt.want {
				t.Errorf("ShouldArchive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A family appointment must not archive after the first of two patients
// pays, and must archive once the second does.
func TestShouldArchive_TwoPatientFlow(t *testing.T) {
	prescriptions := []PrescriptionState{
		{ID: "p1", IsPaid: true},
		{ID: "p2", IsPaid: false},
	}
	if ShouldArchive(prescriptions) {
		t.Fatal("must not archive while a sibling prescription is unpaid")
	}

	prescriptions[1].IsPaid = true
	if !ShouldArchive(prescriptions) {
		t.Fatal("must archive once every prescription is paid")
	}
}
