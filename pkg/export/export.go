// Package export writes filtered report rows to XLSX and CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/clinicore/clinicore-api/internal/domain/report"
	"github.com/clinicore/clinicore-api/pkg/format"
)

var headers = []string{
	"Session", "Appt No", "Patient", "Contact", "Doctor",
	"Date", "Time", "Status", "Charge", "Payment",
}

func rowValues(r report.Row) []string {
	date := ""
	if r.Date != nil {
		date = r.Date.Format("2006-01-02")
	}

	payment := "Unpaid"
	switch {
	case r.Refunded:
		payment = "Refunded"
	case r.Paid:
		payment = "Paid"
	}

	return []string{
		r.SessionID,
		fmt.Sprintf("%d", r.AppointmentNo),
		r.PatientName,
		r.PatientContact,
		r.DoctorName,
		date,
		format.Time12h(r.StartTime),
		r.Status.String(),
		format.Amount(r.Revenue()),
		payment,
	}
}

// WriteCSV writes the rows as CSV, header first.
func WriteCSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(rowValues(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the rows as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, sheetName string, rows []report.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		for col, v := range rowValues(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
