package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// PatientService handles patient-related operations
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// CreatePatientInput represents the create patient input
type CreatePatientInput struct {
	UserID      uuid.UUID
	Name        string
	Contact     string
	Email       *string
	Address     *string
	BirthDate   *time.Time
	Gender      *string
	Allergies   *string
	Notes       *string
}

// CreatePatient registers a new patient. Walk-ins are matched on contact
// number, so a duplicate contact reuses the existing record instead of
// creating a second one.
func (s *PatientService) CreatePatient(ctx context.Context, input *CreatePatientInput) (*entity.Patient, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	if input.Contact != "" {
		existing, err := s.patientRepo.GetByContact(ctx, input.Contact)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	patient := &entity.Patient{
		ClinicID:    clinicID,
		UserID:      input.UserID,
		Name:        input.Name,
		Contact:     input.Contact,
		Email:       input.Email,
		Address:     input.Address,
		BirthDate:   input.BirthDate,
		Gender:      input.Gender,
		Allergies:   input.Allergies,
		Notes:       input.Notes,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// FindPatientByContact looks a patient up by contact number
func (s *PatientService) FindPatientByContact(ctx context.Context, contact string) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// ListPatients lists patients with pagination and search
func (s *PatientService) ListPatients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

// ListPatientsWithCursor lists patients using cursor-based pagination
func (s *PatientService) ListPatientsWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Patient], error) {
	patients, err := s.patientRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(patients, params.Limit,
		func(p entity.Patient) string { return p.ID.String() },
		func(p entity.Patient) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdatePatientInput represents the update patient input
type UpdatePatientInput struct {
	ID          uuid.UUID
	Name        *string
	Contact     *string
	Email       *string
	Address     *string
	BirthDate   *time.Time
	Gender      *string
	Allergies   *string
	Notes       *string
}

// UpdatePatient updates a patient
func (s *PatientService) UpdatePatient(ctx context.Context, input *UpdatePatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Contact != nil {
		patient.Contact = *input.Contact
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.BirthDate != nil {
		patient.BirthDate = input.BirthDate
	}
	if input.Gender != nil {
		patient.Gender = input.Gender
	}
	if input.Allergies != nil {
		patient.Allergies = input.Allergies
	}
	if input.Notes != nil {
		patient.Notes = input.Notes
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient deletes a patient
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}

	return s.patientRepo.Delete(ctx, id)
}

// DoctorService handles doctor-related operations
type DoctorService struct {
	doctorRepo repository.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(doctorRepo repository.DoctorRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo}
}

// CreateDoctorInput represents the create doctor input
type CreateDoctorInput struct {
	UserID         uuid.UUID
	Name           string
	Specialty      *string
	Email          *string
	Phone          *string
	RegistrationNo *string
	ChannelingFee  int64 // cents
}

// CreateDoctor creates a new doctor
func (s *DoctorService) CreateDoctor(ctx context.Context, input *CreateDoctorInput) (*entity.Doctor, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	doctor := &entity.Doctor{
		ClinicID:       clinicID,
		UserID:         input.UserID,
		Name:           input.Name,
		Specialty:      input.Specialty,
		Email:          input.Email,
		Phone:          input.Phone,
		RegistrationNo: input.RegistrationNo,
		ChannelingFee:  input.ChannelingFee,
		IsActive:       true,
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// GetDoctor retrieves a doctor by ID
func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewNotFoundError("Doctor")
	}
	return doctor, nil
}

// ListDoctors lists doctors with pagination and search
func (s *DoctorService) ListDoctors(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Doctor], error) {
	doctors, total, err := s.doctorRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(doctors, pag), nil
}

// ListActiveDoctors returns doctors available for scheduling
func (s *DoctorService) ListActiveDoctors(ctx context.Context) ([]entity.Doctor, error) {
	return s.doctorRepo.ListActive(ctx)
}

// UpdateDoctorInput represents the update doctor input
type UpdateDoctorInput struct {
	ID             uuid.UUID
	Name           *string
	Specialty      *string
	Email          *string
	Phone          *string
	RegistrationNo *string
	ChannelingFee  *int64
	IsActive       *bool
}

// UpdateDoctor updates a doctor
func (s *DoctorService) UpdateDoctor(ctx context.Context, input *UpdateDoctorInput) (*entity.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewNotFoundError("Doctor")
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialty != nil {
		doctor.Specialty = input.Specialty
	}
	if input.Email != nil {
		doctor.Email = input.Email
	}
	if input.Phone != nil {
		doctor.Phone = input.Phone
	}
	if input.RegistrationNo != nil {
		doctor.RegistrationNo = input.RegistrationNo
	}
	if input.ChannelingFee != nil {
		doctor.ChannelingFee = *input.ChannelingFee
	}
	if input.IsActive != nil {
		doctor.IsActive = *input.IsActive
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// DeleteDoctor deletes a doctor
func (s *DoctorService) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doctor == nil {
		return apperror.NewNotFoundError("Doctor")
	}

	return s.doctorRepo.Delete(ctx, id)
}
