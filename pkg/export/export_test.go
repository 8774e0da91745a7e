package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/report"
)

func testRows() []report.Row {
	d := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	return []report.Row{
		{
			ID: "a1", SessionID: "doc-1_2026-08-05_09:00_12:00", AppointmentNo: 1,
			PatientName: "Nimal Perera", PatientContact: "0771234567",
			DoctorName: "Dr. Silva", Date: &d, StartTime: "09:00",
			Status: enum.AppointmentStatusCompleted, TotalCharge: 250000, Paid: true,
		},
		{
			ID: "a2", SessionID: "doc-1_2026-08-05_09:00_12:00", AppointmentNo: 2,
			PatientName: "Kamala Fernando", PatientContact: "0719876543",
			DoctorName: "Dr. Silva", Date: &d, StartTime: "09:00",
			Status: enum.AppointmentStatusScheduled, TotalCharge: 180000,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Session" || records[0][len(records[0])-1] != "Payment" {
		t.Errorf("unexpected header: %v", records[0])
	}

	first := records[1]
	if first[2] != "Nimal Perera" {
		t.Errorf("patient = %q", first[2])
	}
	if first[6] != "9:00 AM" {
		t.Errorf("time = %q, want 12-hour form", first[6])
	}
	if first[8] != "2,500.00" {
		t.Errorf("charge = %q", first[8])
	}
	if first[9] != "Paid" || records[2][9] != "Unpaid" {
		t.Errorf("payment columns = %q, %q", first[9], records[2][9])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, "Appointments", testRows()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if !strings.HasPrefix(buf.String(), "PK") {
		t.Error("output is not a zip archive")
	}
}
