package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	GetWithProcedures(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	ListWithCursor(ctx context.Context, params *AppointmentCursorFilterParams) ([]entity.Appointment, error)
	// ListBySession returns all non-archived appointments sharing a session key.
	ListBySession(ctx context.Context, sessionID string) ([]entity.Appointment, error)
	// ListForDay returns appointments on a calendar date, optionally for one doctor.
	ListForDay(ctx context.Context, date time.Time, doctorID *uuid.UUID) ([]entity.Appointment, error)
	// CountSlotOccupancy counts appointments holding a slot. Cancelled
	// appointments release their slot and are not counted.
	CountSlotOccupancy(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error
	MarkArrived(ctx context.Context, id uuid.UUID) error
	Archive(ctx context.Context, id uuid.UUID) error
	// MarkPaid records the payment flags and the settling sale on the appointment.
	MarkPaid(ctx context.Context, id uuid.UUID, paidBy string, saleID *uuid.UUID) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}

// AppointmentFilterParams contains filtering parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	Status          *enum.AppointmentStatus
	DoctorID        *uuid.UUID
	PatientID       *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeArchived bool
	SortBy          string
	SortOrder       string
}

// AppointmentCursorFilterParams contains cursor-based filtering for appointment queries
type AppointmentCursorFilterParams struct {
	Cursor          *pagination.CursorParams
	Search          string
	Status          *enum.AppointmentStatus
	DoctorID        *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeArchived bool
}

// AppointmentProcedureRepository defines the interface for appointment procedure operations
type AppointmentProcedureRepository interface {
	Create(ctx context.Context, procedure *entity.AppointmentProcedure) error
	CreateBatch(ctx context.Context, procedures []entity.AppointmentProcedure) error
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]entity.AppointmentProcedure, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAppointmentID(ctx context.Context, appointmentID uuid.UUID) error
}

// PrescriptionRepository defines the interface for prescription data operations
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	CreateBatch(ctx context.Context, prescriptions []entity.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	// GetByAppointmentID returns every prescription attached to an
	// appointment, paid or not.
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]entity.Prescription, error)
	Update(ctx context.Context, prescription *entity.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListUnpaid(ctx context.Context, params *pagination.PaginationParams) ([]entity.Prescription, int64, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidBy string, throughPOS bool, paidAt time.Time) error
}
