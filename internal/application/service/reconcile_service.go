package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/feed"
	"github.com/clinicore/clinicore-api/internal/domain/billing"
	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// ReconcileService settles prescriptions against their parent appointment.
// A family booking carries one prescription per patient and the appointment
// archives only when every one of them is paid.
type ReconcileService struct {
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	hub              *feed.Hub
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	hub *feed.Hub,
) *ReconcileService {
	return &ReconcileService{
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		hub:              hub,
	}
}

// SettlePrescription marks one prescription paid outside the POS flow
// (cash at the desk) and archives the parent appointment if that completed
// the settlement.
func (s *ReconcileService) SettlePrescription(ctx context.Context, id uuid.UUID, paidBy string) (*entity.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	if prescription.IsPaid {
		return nil, apperror.ErrAlreadySettled
	}

	if err := s.prescriptionRepo.MarkPaid(ctx, id, paidBy, false, time.Now()); err != nil {
		return nil, err
	}

	if err := s.reconcileAppointment(ctx, prescription.AppointmentID); err != nil {
		return nil, err
	}

	settled, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(feed.EventPrescriptionPaid, prescription.ClinicID.String(), settled)
	}
	return settled, nil
}

// SettleThroughPOS marks a set of prescriptions paid as part of a POS sale.
// The whole set is validated before anything is written: every ID must
// resolve to an unpaid prescription of the given appointment, otherwise the
// call fails and no prescription is touched.
func (s *ReconcileService) SettleThroughPOS(ctx context.Context, appointmentID uuid.UUID, prescriptionIDs []uuid.UUID, paidBy string) error {
	if len(prescriptionIDs) == 0 {
		return nil
	}

	prescriptions, err := s.prescriptionRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*entity.Prescription, len(prescriptions))
	for i := range prescriptions {
		byID[prescriptions[i].ID] = &prescriptions[i]
	}

	for _, id := range prescriptionIDs {
		p, ok := byID[id]
		if !ok {
			return apperror.NewBadRequestError("Prescription does not belong to this appointment")
		}
		if p.IsPaid {
			return apperror.ErrAlreadySettled
		}
	}

	now := time.Now()
	for _, id := range prescriptionIDs {
		if err := s.prescriptionRepo.MarkPaid(ctx, id, paidBy, true, now); err != nil {
			return err
		}
	}

	return s.reconcileAppointment(ctx, appointmentID)
}

// reconcileAppointment archives the appointment once its fee is paid and
// its prescriptions settle it. Partial family settlements leave the
// appointment live on the board.
func (s *ReconcileService) reconcileAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.Archived {
		return nil
	}
	if !appointment.Payment.IsPaid {
		return nil
	}

	prescriptions, err := s.prescriptionRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		return err
	}

	states := make([]billing.PrescriptionState, 0, len(prescriptions))
	for _, p := range prescriptions {
		states = append(states, billing.PrescriptionState{ID: p.ID.String(), IsPaid: p.IsPaid})
	}

	if !billing.ShouldArchive(states) {
		return nil
	}

	if err := s.appointmentRepo.Archive(ctx, appointmentID); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Publish(feed.EventAppointmentArchived, appointment.ClinicID.String(), appointmentID.String())
	}
	return nil
}

// ListUnpaidPrescriptions lists prescriptions still awaiting payment
func (s *ReconcileService) ListUnpaidPrescriptions(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Prescription], error) {
	prescriptions, total, err := s.prescriptionRepo.ListUnpaid(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(prescriptions, pag), nil
}

// GetAppointmentPrescriptions returns every prescription on an appointment
func (s *ReconcileService) GetAppointmentPrescriptions(ctx context.Context, appointmentID uuid.UUID) ([]entity.Prescription, error) {
	return s.prescriptionRepo.GetByAppointmentID(ctx, appointmentID)
}
