package report

import (
	"testing"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
)

func date(s string) *time.Time {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func statusPtr(s enum.AppointmentStatus) *enum.AppointmentStatus { return &s }

func sampleRows() []Row {
	return []Row{
		{ID: "a1", PatientName: "Nimal Perera", PatientContact: "0771234567", DoctorID: "doc-1", DoctorName: "Dr. Silva",
			Date: date("2026-08-05"), StartTime: "09:00", Status: enum.AppointmentStatusCompleted,
			TotalCharge: 250000, DoctorFee: 150000, Arrived: true, Paid: true},
		{ID: "a2", PatientName: "Kamala Fernando", PatientContact: "0719876543", DoctorID: "doc-2", DoctorName: "Dr. Jayawardena",
			Date: date("2026-08-12"), StartTime: "10:30", Status: enum.AppointmentStatusCompleted,
			TotalCharge: 180000, ManualAmount: 200000, DoctorFee: 120000, Arrived: true, Paid: true},
		{ID: "a3", PatientName: "Nimal Perera", PatientContact: "0771234567", DoctorID: "doc-1", DoctorName: "Dr. Silva",
			Date: date("2026-08-20"), StartTime: "14:00", Status: enum.AppointmentStatusScheduled,
			TotalCharge: 250000, DoctorFee: 150000},
		{ID: "a4", PatientName: "Sunil Bandara", PatientContact: "0755551234", DoctorID: "doc-2", DoctorName: "Dr. Jayawardena",
			Date: date("2026-07-28"), StartTime: "11:00", Status: enum.AppointmentStatusCompleted,
			TotalCharge: 180000, DoctorFee: 120000, Arrived: true, Paid: true},
		{ID: "a5", PatientName: "Walk In", PatientContact: "", DoctorID: "doc-1", DoctorName: "Dr. Silva",
			Date: nil, StartTime: "", Status: enum.AppointmentStatusCancelled,
			TotalCharge: 250000},
		{ID: "a6", PatientName: "Refund Case", PatientContact: "0700000000", DoctorID: "doc-1", DoctorName: "Dr. Silva",
			Date: date("2026-08-15"), StartTime: "15:00", Status: enum.AppointmentStatusCompleted,
			TotalCharge: 300000, DoctorFee: 150000, Arrived: true, Paid: true, Refunded: true},
	}
}

func TestApply_ThisMonthCompletedAllDoctors(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := Filter{Preset: RangeThisMonth, DoctorID: "all", Status: statusPtr(enum.AppointmentStatusCompleted)}

	got := Apply(sampleRows(), f, now)

	// Completed rows dated within August 2026: a1, a2, a6. a4 is July,
	// a3 is scheduled, a5 has no date.
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if s := Summarize(got); s.TotalAppointments != 3 || s.Completed != 3 {
		t.Errorf("summary = %+v, want 3 completed", s)
	}
}

func TestApply_DoctorFilter(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := Filter{Preset: RangeAll, DoctorID: "doc-2"}

	got := Apply(sampleRows(), f, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for doc-2, got %d", len(got))
	}
	for _, r := range got {
		if r.DoctorID != "doc-2" {
			t.Errorf("row %s belongs to %s", r.ID, r.DoctorID)
		}
	}
}

func TestApply_BoundedRangeExcludesUndated(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := Apply(sampleRows(), Filter{Preset: RangeThisYear}, now)
	for _, r := range got {
		if r.Date == nil {
			t.Error("undated row survived a bounded date range")
		}
	}

	all := Apply(sampleRows(), Filter{Preset: RangeAll}, now)
	if len(all) != len(sampleRows()) {
		t.Errorf("unbounded range should keep all rows, got %d of %d", len(all), len(sampleRows()))
	}
}

func TestApply_FreeTextQuery(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"patient name case-insensitive", "nimal", 2},
		{"contact substring", "987", 1},
		{"doctor name", "jayawardena", 2},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleRows(), Filter{Preset: RangeAll, Query: tt.query}, now)
			if len(got) != tt.want {
				t.Errorf("query %q matched %d rows, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestApply_CustomRangeInclusive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := Filter{Preset: RangeCustom, From: date("2026-08-05"), To: date("2026-08-12")}

	got := Apply(sampleRows(), f, now)
	if len(got) != 2 {
		t.Fatalf("expected both boundary rows, got %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows())

	if s.TotalAppointments != 6 {
		t.Errorf("TotalAppointments = %d, want 6", s.TotalAppointments)
	}
	if s.Completed != 4 || s.Scheduled != 1 || s.Cancelled != 1 || s.NoShow != 0 {
		t.Errorf("status counts = %d/%d/%d/%d", s.Completed, s.Scheduled, s.Cancelled, s.NoShow)
	}

	// Nimal appears twice under one contact; the walk-in has no contact
	// and counts alone: 4 distinct contacts + 1 = 5.
	if s.UniquePatients != 5 {
		t.Errorf("UniquePatients = %d, want 5", s.UniquePatients)
	}

	// Revenue: a1 250000 + a2 manual 200000 (overrides 180000) +
	// a3 250000 + a4 180000 + a5 250000; a6 refunded contributes 0.
	if want := int64(250000 + 200000 + 250000 + 180000 + 250000); s.TotalRevenue != want {
		t.Errorf("TotalRevenue = %d, want %d", s.TotalRevenue, want)
	}

	// Doctor fees only for arrived rows: a1 + a2 + a4 + a6.
	if want := int64(150000 + 120000 + 120000 + 150000); s.DoctorFees != want {
		t.Errorf("DoctorFees = %d, want %d", s.DoctorFees, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalAppointments != 0 || s.TotalRevenue != 0 || s.CompletionRate != 0 {
		t.Errorf("empty summary not zeroed: %+v", s)
	}
}

func TestGroupByDoctor_RevenueDescending(t *testing.T) {
	groups := GroupByDoctor(sampleRows())
	if len(groups) != 2 {
		t.Fatalf("expected 2 doctor groups, got %d", len(groups))
	}

	// doc-1: 250000 + 250000 + 250000 + 0 (refunded) = 750000
	// doc-2: 200000 + 180000 = 380000
	if groups[0].DoctorID != "doc-1" || groups[0].Revenue != 750000 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].DoctorID != "doc-2" || groups[1].Revenue != 380000 {
		t.Errorf("second group = %+v", groups[1])
	}
	if groups[0].Count != 4 || groups[1].Count != 2 {
		t.Errorf("counts = %d/%d, want 4/2", groups[0].Count, groups[1].Count)
	}
}

func TestGroupByMonth_Chronological(t *testing.T) {
	groups := GroupByMonth(sampleRows())
	if len(groups) != 2 {
		t.Fatalf("expected 2 month groups, got %d", len(groups))
	}
	if groups[0].Month != "2026-07" || groups[1].Month != "2026-08" {
		t.Errorf("months out of order: %q, %q", groups[0].Month, groups[1].Month)
	}
	if groups[0].Count != 1 || groups[1].Count != 4 {
		t.Errorf("counts = %d/%d, want 1/4", groups[0].Count, groups[1].Count)
	}
}

func TestSortChronological_UndatedLast(t *testing.T) {
	rows := sampleRows()
	SortChronological(rows)

	if rows[0].ID != "a4" {
		t.Errorf("earliest row should lead, got %s", rows[0].ID)
	}
	if rows[len(rows)-1].ID != "a5" {
		t.Errorf("undated row should sort last, got %s", rows[len(rows)-1].ID)
	}
}
