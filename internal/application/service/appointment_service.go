package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/feed"
	"github.com/clinicore/clinicore-api/internal/domain/billing"
	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// AppointmentService handles appointment booking, session numbering and
// status transitions
type AppointmentService struct {
	appointmentRepo  repository.AppointmentRepository
	apptProcRepo     repository.AppointmentProcedureRepository
	prescriptionRepo repository.PrescriptionRepository
	doctorRepo       repository.DoctorRepository
	procedureRepo    repository.ProcedureRepository
	clinicRepo       repository.ClinicRepository
	hub              *feed.Hub
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	apptProcRepo repository.AppointmentProcedureRepository,
	prescriptionRepo repository.PrescriptionRepository,
	doctorRepo repository.DoctorRepository,
	procedureRepo repository.ProcedureRepository,
	clinicRepo repository.ClinicRepository,
	hub *feed.Hub,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo:  appointmentRepo,
		apptProcRepo:     apptProcRepo,
		prescriptionRepo: prescriptionRepo,
		doctorRepo:       doctorRepo,
		procedureRepo:    procedureRepo,
		clinicRepo:       clinicRepo,
		hub:              hub,
	}
}

// ProcedureLineInput is one procedure attached at booking time. Either
// ProcedureID references the catalog, or Name/Charge describe a one-off
// line.
type ProcedureLineInput struct {
	ProcedureID *uuid.UUID
	Name        string
	Charge      int64 // cents, used only for one-off lines
}

// FamilyMemberInput is an additional patient sharing the appointment.
// Each one gets their own prescription record.
type FamilyMemberInput struct {
	PatientID      *uuid.UUID
	PatientName    string
	PatientContact string
}

// CreateAppointmentInput represents the create appointment input
type CreateAppointmentInput struct {
	UserID         uuid.UUID
	PatientID      *uuid.UUID
	PatientName    string
	PatientContact string
	DoctorID       uuid.UUID
	Date           *time.Time
	StartTime      string
	EndTime        string
	ManualAmount   int64 // cents, overrides the computed charge when > 0
	Procedures     []ProcedureLineInput
	FamilyMembers  []FamilyMemberInput
}

// CreateAppointment books an appointment, derives its session key and
// assigns its queue number within the session.
func (s *AppointmentService) CreateAppointment(ctx context.Context, input *CreateAppointmentInput) (*entity.Appointment, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	if input.PatientName == "" {
		return nil, apperror.NewBadRequestError("Patient name is required")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewNotFoundError("Doctor")
	}
	if !doctor.IsActive {
		return nil, apperror.NewBadRequestError("Doctor is not available for scheduling")
	}

	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}

	// A full session refuses new bookings when a capacity is configured.
	if capacity := clinic.Settings.SlotCapacity; capacity > 0 && input.Date != nil && input.StartTime != "" {
		occupied, err := s.appointmentRepo.CountSlotOccupancy(ctx, input.DoctorID, *input.Date, input.StartTime)
		if err != nil {
			return nil, err
		}
		if occupied >= int64(capacity) {
			return nil, apperror.NewConflictError("Session is fully booked")
		}
	}

	procedures, totalCharge, err := s.resolveProcedures(ctx, input.Procedures)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClinicID:       clinicID,
		UserID:         input.UserID,
		PatientID:      input.PatientID,
		PatientName:    input.PatientName,
		PatientContact: input.PatientContact,
		DoctorID:       input.DoctorID,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Status:         enum.AppointmentStatusScheduled,
		TotalCharge:    totalCharge,
		ManualAmount:   input.ManualAmount,
		SessionID:      sessionKeyFor(input.DoctorID, input.Date, input.StartTime, input.EndTime),
	}
	if input.Date != nil {
		appointment.DayOfWeek = input.Date.Weekday().String()
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	for i := range procedures {
		procedures[i].AppointmentID = appointment.ID
	}
	if err := s.apptProcRepo.CreateBatch(ctx, procedures); err != nil {
		return nil, err
	}

	if err := s.createPrescriptions(ctx, clinicID, appointment, input.FamilyMembers); err != nil {
		return nil, err
	}

	if err := s.renumberSession(ctx, appointment.SessionID); err != nil {
		return nil, err
	}

	created, err := s.appointmentRepo.GetWithProcedures(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}

	s.publishSessionSnapshot(ctx, feed.EventAppointmentCreated, clinicID, appointment.SessionID)
	return created, nil
}

func (s *AppointmentService) resolveProcedures(ctx context.Context, lines []ProcedureLineInput) ([]entity.AppointmentProcedure, int64, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.ProcedureID != nil {
			ids = append(ids, *line.ProcedureID)
		}
	}

	catalog := make(map[uuid.UUID]entity.Procedure)
	if len(ids) > 0 {
		found, err := s.procedureRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range found {
			catalog[p.ID] = p
		}
	}

	procedures := make([]entity.AppointmentProcedure, 0, len(lines))
	var total int64
	for _, line := range lines {
		ap := entity.AppointmentProcedure{ProcedureID: line.ProcedureID}
		if line.ProcedureID != nil {
			p, ok := catalog[*line.ProcedureID]
			if !ok {
				return nil, 0, apperror.NewNotFoundError("Procedure")
			}
			// Charges are frozen at booking time so later catalog edits
			// do not change past bills.
			ap.Name = p.Name
			ap.Charge = p.Charge
			ap.DoctorCharge = p.DoctorCharge
		} else {
			if line.Name == "" {
				return nil, 0, apperror.NewBadRequestError("Procedure name is required for custom lines")
			}
			ap.Name = line.Name
			ap.Charge = line.Charge
		}
		total += ap.Charge
		procedures = append(procedures, ap)
	}

	return procedures, total, nil
}

// createPrescriptions writes one prescription for the primary patient and
// one for each additional family member on the booking.
func (s *AppointmentService) createPrescriptions(ctx context.Context, clinicID uuid.UUID, appointment *entity.Appointment, members []FamilyMemberInput) error {
	prescriptions := []entity.Prescription{{
		ClinicID:       clinicID,
		AppointmentID:  appointment.ID,
		PatientID:      appointment.PatientID,
		PatientName:    appointment.PatientName,
		PatientContact: appointment.PatientContact,
	}}

	for _, m := range members {
		if m.PatientName == "" {
			return apperror.NewBadRequestError("Family member name is required")
		}
		prescriptions = append(prescriptions, entity.Prescription{
			ClinicID:       clinicID,
			AppointmentID:  appointment.ID,
			PatientID:      m.PatientID,
			PatientName:    m.PatientName,
			PatientContact: m.PatientContact,
		})
	}

	return s.prescriptionRepo.CreateBatch(ctx, prescriptions)
}

// renumberSession recomputes queue numbers for every appointment in a
// session. Cancelled appointments release their number; the remaining
// members always hold a gapless 1..N.
func (s *AppointmentService) renumberSession(ctx context.Context, sessionID string) error {
	appointments, err := s.appointmentRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	members := make([]billing.SessionMember, 0, len(appointments))
	for i := range appointments {
		if !appointments[i].Status.CountsTowardSession() {
			continue
		}
		createdAt := appointments[i].CreatedAt
		members = append(members, billing.SessionMember{
			ID:        appointments[i].ID.String(),
			CreatedAt: &createdAt,
		})
	}

	numbers := billing.AppointmentNumbers(members)
	for i := range appointments {
		number := numbers[appointments[i].ID.String()]
		if appointments[i].AppointmentNo == number {
			continue
		}
		appointments[i].AppointmentNo = number
		if err := s.appointmentRepo.Update(ctx, &appointments[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetAppointment retrieves an appointment with its procedures
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetWithProcedures(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// ListAppointments lists appointments with filtering and pagination
func (s *AppointmentService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// ListAppointmentsWithCursor lists appointments using cursor-based pagination
func (s *AppointmentService) ListAppointmentsWithCursor(ctx context.Context, params *repository.AppointmentCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Appointment], error) {
	appointments, err := s.appointmentRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(appointments, params.Cursor.Limit,
		func(a entity.Appointment) string { return a.ID.String() },
		func(a entity.Appointment) time.Time { return a.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetDaySchedule returns all appointments on a calendar date, optionally
// narrowed to one doctor.
func (s *AppointmentService) GetDaySchedule(ctx context.Context, date time.Time, doctorID *uuid.UUID) ([]entity.Appointment, error) {
	return s.appointmentRepo.ListForDay(ctx, date, doctorID)
}

// UpdateAppointmentInput represents the update appointment input
type UpdateAppointmentInput struct {
	ID             uuid.UUID
	PatientName    *string
	PatientContact *string
	DoctorID       *uuid.UUID
	Date           *time.Time
	ClearDate      bool
	StartTime      *string
	EndTime        *string
	ManualAmount   *int64
	Procedures     []ProcedureLineInput
	HasProcedures  bool // distinguishes "replace with empty" from "leave alone"
}

// UpdateAppointment updates an appointment. Rescheduling moves it to a new
// session and renumbers both the old and the new one.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, input *UpdateAppointmentInput) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Archived {
		return nil, apperror.NewConflictError("Archived appointments cannot be modified")
	}

	oldSession := appointment.SessionID

	if input.PatientName != nil {
		appointment.PatientName = *input.PatientName
	}
	if input.PatientContact != nil {
		appointment.PatientContact = *input.PatientContact
	}
	if input.DoctorID != nil {
		doctor, err := s.doctorRepo.GetByID(ctx, *input.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, apperror.NewNotFoundError("Doctor")
		}
		appointment.DoctorID = *input.DoctorID
	}
	if input.ClearDate {
		appointment.Date = nil
		appointment.DayOfWeek = ""
	} else if input.Date != nil {
		appointment.Date = input.Date
		appointment.DayOfWeek = input.Date.Weekday().String()
	}
	if input.StartTime != nil {
		appointment.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		appointment.EndTime = *input.EndTime
	}
	if input.ManualAmount != nil {
		appointment.ManualAmount = *input.ManualAmount
	}

	if input.HasProcedures {
		procedures, totalCharge, err := s.resolveProcedures(ctx, input.Procedures)
		if err != nil {
			return nil, err
		}
		if err := s.apptProcRepo.DeleteByAppointmentID(ctx, appointment.ID); err != nil {
			return nil, err
		}
		for i := range procedures {
			procedures[i].AppointmentID = appointment.ID
		}
		if err := s.apptProcRepo.CreateBatch(ctx, procedures); err != nil {
			return nil, err
		}
		appointment.TotalCharge = totalCharge
	}

	appointment.SessionID = sessionKeyFor(appointment.DoctorID, appointment.Date, appointment.StartTime, appointment.EndTime)

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.renumberSession(ctx, appointment.SessionID); err != nil {
		return nil, err
	}
	if oldSession != appointment.SessionID {
		if err := s.renumberSession(ctx, oldSession); err != nil {
			return nil, err
		}
	}

	updated, err := s.appointmentRepo.GetWithProcedures(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}

	s.publishSessionSnapshot(ctx, feed.EventAppointmentUpdated, appointment.ClinicID, appointment.SessionID)
	if oldSession != appointment.SessionID {
		s.publishSessionSnapshot(ctx, feed.EventAppointmentUpdated, appointment.ClinicID, oldSession)
	}
	return updated, nil
}

// UpdateStatus transitions an appointment to a new status. Cancelling
// releases the queue number and renumbers the rest of the session.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if appointment.Status.CountsTowardSession() != status.CountsTowardSession() {
		if err := s.renumberSession(ctx, appointment.SessionID); err != nil {
			return nil, err
		}
	}

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishSessionSnapshot(ctx, feed.EventAppointmentUpdated, appointment.ClinicID, appointment.SessionID)
	return updated, nil
}

// MarkArrived flags that the patient has arrived. Arrival is what makes the
// doctor's channeling fee accrue in reports.
func (s *AppointmentService) MarkArrived(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}

	if err := s.appointmentRepo.MarkArrived(ctx, id); err != nil {
		return err
	}

	s.publishSessionSnapshot(ctx, feed.EventAppointmentArrived, appointment.ClinicID, appointment.SessionID)
	return nil
}

// RecordFeePayment marks the appointment fee as paid directly at the
// appointments desk, outside any POS sale. Checkout later excludes the fee
// from the payable total but still prints it on the receipt.
func (s *AppointmentService) RecordFeePayment(ctx context.Context, id uuid.UUID, paidBy string) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Payment.IsPaid {
		return nil, apperror.ErrAlreadySettled
	}

	if err := s.appointmentRepo.MarkPaid(ctx, id, paidBy, nil); err != nil {
		return nil, err
	}

	return s.appointmentRepo.GetByID(ctx, id)
}

// RefundFee marks a paid appointment fee as refunded. Refunded appointments
// contribute nothing to revenue.
func (s *AppointmentService) RefundFee(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if !appointment.Payment.IsPaid {
		return nil, apperror.NewBadRequestError("Only paid appointments can be refunded")
	}

	if err := s.appointmentRepo.MarkRefunded(ctx, id); err != nil {
		return nil, err
	}

	return s.appointmentRepo.GetByID(ctx, id)
}

// DeleteAppointment removes an appointment and renumbers its session
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NewNotFoundError("Appointment")
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.renumberSession(ctx, appointment.SessionID); err != nil {
		return err
	}

	s.publishSessionSnapshot(ctx, feed.EventAppointmentUpdated, appointment.ClinicID, appointment.SessionID)
	return nil
}

// publishSessionSnapshot pushes the full current membership of a session
// to the live feed. Consumers replace their copy wholesale instead of
// applying deltas; the hub's sequence number lets them drop a snapshot
// that arrives after a newer one.
func (s *AppointmentService) publishSessionSnapshot(ctx context.Context, eventType string, clinicID uuid.UUID, sessionID string) {
	if s.hub == nil {
		return
	}

	appointments, err := s.appointmentRepo.ListBySession(ctx, sessionID)
	if err != nil {
		// The mutation itself succeeded; a failed snapshot refresh only
		// delays the next push.
		return
	}

	s.hub.Publish(eventType, clinicID.String(), map[string]interface{}{
		"session_id":   sessionID,
		"appointments": appointments,
	})
}

// sessionKeyFor formats the appointment fields the way session keys expect
// them: dates as YYYY-MM-DD, times verbatim.
func sessionKeyFor(doctorID uuid.UUID, date *time.Time, startTime, endTime string) string {
	dateStr := ""
	if date != nil {
		dateStr = date.Format("2006-01-02")
	}
	return billing.SessionKey(doctorID.String(), dateStr, startTime, endTime)
}
