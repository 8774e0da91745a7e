package service

import (
	"context"
	"io"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/report"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/export"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// fetchLimit bounds how many appointments a report pulls into memory.
// Clinic datasets are small; this is a safety stop, not pagination.
const fetchLimit = 5000

// ReportService builds filtered appointment reports and their exports
type ReportService struct {
	appointmentRepo repository.AppointmentRepository
}

// NewReportService creates a new report service
func NewReportService(appointmentRepo repository.AppointmentRepository) *ReportService {
	return &ReportService{appointmentRepo: appointmentRepo}
}

// ReportResult bundles the filtered rows with their aggregations
type ReportResult struct {
	Rows     []report.Row         `json:"rows"`
	Summary  report.Summary       `json:"summary"`
	ByDoctor []report.DoctorGroup `json:"by_doctor"`
	ByMonth  []report.MonthGroup  `json:"by_month"`
}

// BuildReport fetches the clinic's appointments, applies the filter and
// computes the summary and chart groupings.
func (s *ReportService) BuildReport(ctx context.Context, filter report.Filter) (*ReportResult, error) {
	rows, err := s.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	filtered := report.Apply(rows, filter, time.Now())
	report.SortChronological(filtered)

	return &ReportResult{
		Rows:     filtered,
		Summary:  report.Summarize(filtered),
		ByDoctor: report.GroupByDoctor(filtered),
		ByMonth:  report.GroupByMonth(filtered),
	}, nil
}

// ExportCSV writes the filtered report as CSV
func (s *ReportService) ExportCSV(ctx context.Context, filter report.Filter, w io.Writer) error {
	result, err := s.BuildReport(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, result.Rows)
}

// ExportXLSX writes the filtered report as an XLSX workbook
func (s *ReportService) ExportXLSX(ctx context.Context, filter report.Filter, w io.Writer) error {
	result, err := s.BuildReport(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, "Appointments", result.Rows)
}

func (s *ReportService) fetchRows(ctx context.Context) ([]report.Row, error) {
	params := &repository.AppointmentFilterParams{
		Pagination:      &pagination.PaginationParams{Page: 1, PerPage: fetchLimit},
		IncludeArchived: true,
	}
	appointments, _, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	rows := make([]report.Row, 0, len(appointments))
	for i := range appointments {
		rows = append(rows, rowFromAppointment(&appointments[i]))
	}
	return rows, nil
}

func rowFromAppointment(a *entity.Appointment) report.Row {
	return report.Row{
		ID:             a.ID.String(),
		PatientName:    a.PatientName,
		PatientContact: a.PatientContact,
		DoctorID:       a.DoctorID.String(),
		DoctorName:     a.Doctor.Name,
		Date:           a.Date,
		StartTime:      a.StartTime,
		Status:         a.Status,
		TotalCharge:    a.TotalCharge,
		ManualAmount:   a.ManualAmount,
		DoctorFee:      a.Doctor.ChannelingFee,
		Arrived:        a.Arrived,
		Paid:           a.Payment.IsPaid,
		Refunded:       a.Payment.Refunded,
		SessionID:      a.SessionID,
		AppointmentNo:  a.AppointmentNo,
	}
}
