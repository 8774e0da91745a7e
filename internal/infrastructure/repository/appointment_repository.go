package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	domainRepo "github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Doctor").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) GetWithProcedures(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Doctor").
		Preload("Patient").
		Preload("Procedures").
		Preload("Prescriptions").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(ClinicScope(ctx))
	query = applyAppointmentFilters(query, params.Search, params.Status, params.DoctorID,
		params.StartDate, params.EndDate, params.IncludeArchived)

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Doctor").
		Order(sortBy + " " + sortOrder + " NULLS LAST").
		Find(&appointments).Error

	return appointments, total, err
}

// ListWithCursor returns appointments using cursor-based pagination
func (r *appointmentRepository) ListWithCursor(ctx context.Context, params *domainRepo.AppointmentCursorFilterParams) ([]entity.Appointment, error) {
	var appointments []entity.Appointment

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(ClinicScope(ctx))
	query = applyAppointmentFilters(query, params.Search, params.Status, params.DoctorID,
		params.StartDate, params.EndDate, params.IncludeArchived)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Doctor").
		Order("created_at ASC, id ASC").
		Find(&appointments).Error

	return appointments, err
}

func applyAppointmentFilters(query *gorm.DB, search string, status *enum.AppointmentStatus,
	doctorID *uuid.UUID, startDate, endDate *time.Time, includeArchived bool) *gorm.DB {

	if !includeArchived {
		query = query.Where("archived = false")
	}

	if search != "" {
		query = query.Where("patient_name ILIKE ? OR patient_contact ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}

	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	return query
}

func (r *appointmentRepository) ListBySession(ctx context.Context, sessionID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Where("session_id = ? AND archived = false", sessionID).
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) ListForDay(ctx context.Context, date time.Time, doctorID *uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Where("date >= ? AND date < ? AND archived = false", dayStart, dayEnd)

	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}

	err := query.Preload("Doctor").Order("start_time ASC").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) CountSlotOccupancy(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string) (int64, error) {
	var count int64

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Scopes(ClinicScope(ctx)).
		Where("doctor_id = ? AND date >= ? AND date < ? AND start_time = ?",
			doctorID, dayStart, dayEnd, startTime).
		Where("status <> ?", enum.AppointmentStatusCancelled).
		Count(&count).Error

	return count, err
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) MarkArrived(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("arrived", true).Error
}

func (r *appointmentRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("archived", true).Error
}

func (r *appointmentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidBy string, saleID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_is_paid": true,
			"payment_paid_by": paidBy,
			"payment_sale_id": saleID,
		}).Error
}

func (r *appointmentRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("payment_refunded", true).Error
}

type appointmentProcedureRepository struct {
	db *gorm.DB
}

// NewAppointmentProcedureRepository creates a new appointment procedure repository
func NewAppointmentProcedureRepository(db *gorm.DB) domainRepo.AppointmentProcedureRepository {
	return &appointmentProcedureRepository{db: db}
}

func (r *appointmentProcedureRepository) Create(ctx context.Context, procedure *entity.AppointmentProcedure) error {
	return r.db.WithContext(ctx).Create(procedure).Error
}

func (r *appointmentProcedureRepository) CreateBatch(ctx context.Context, procedures []entity.AppointmentProcedure) error {
	if len(procedures) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&procedures).Error
}

func (r *appointmentProcedureRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]entity.AppointmentProcedure, error) {
	var procedures []entity.AppointmentProcedure
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Find(&procedures).Error
	return procedures, err
}

func (r *appointmentProcedureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.AppointmentProcedure{}, "id = ?", id).Error
}

func (r *appointmentProcedureRepository) DeleteByAppointmentID(ctx context.Context, appointmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.AppointmentProcedure{}, "appointment_id = ?", appointmentID).Error
}

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepository) CreateBatch(ctx context.Context, prescriptions []entity.Prescription) error {
	if len(prescriptions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&prescriptions).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Save(prescription).Error
}

func (r *prescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Prescription{}, "id = ?", id).Error
}

func (r *prescriptionRepository) ListUnpaid(ctx context.Context, params *pagination.PaginationParams) ([]entity.Prescription, int64, error) {
	var prescriptions []entity.Prescription
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Prescription{}).
		Where("is_paid = false")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&prescriptions).Error

	return prescriptions, total, err
}

func (r *prescriptionRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidBy string, throughPOS bool, paidAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Prescription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_paid":          true,
			"paid_by":          paidBy,
			"paid_through_pos": throughPOS,
			"paid_at":          paidAt,
		}).Error
}
