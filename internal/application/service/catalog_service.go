package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// ProcedureService handles the billable procedure catalog
type ProcedureService struct {
	procedureRepo repository.ProcedureRepository
}

// NewProcedureService creates a new procedure service
func NewProcedureService(procedureRepo repository.ProcedureRepository) *ProcedureService {
	return &ProcedureService{procedureRepo: procedureRepo}
}

// CreateProcedureInput represents the create procedure input
type CreateProcedureInput struct {
	UserID       uuid.UUID
	Name         string
	Code         string
	Charge       int64 // cents
	DoctorCharge int64 // cents
	Notes        *string
}

// CreateProcedure adds a procedure to the catalog
func (s *ProcedureService) CreateProcedure(ctx context.Context, input *CreateProcedureInput) (*entity.Procedure, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateReferenceNo("PRC-")
	}

	procedure := &entity.Procedure{
		ClinicID:     clinicID,
		UserID:       input.UserID,
		Name:         input.Name,
		Code:         code,
		Charge:       input.Charge,
		DoctorCharge: input.DoctorCharge,
		Notes:        input.Notes,
		IsActive:     true,
	}

	if err := s.procedureRepo.Create(ctx, procedure); err != nil {
		return nil, err
	}

	return procedure, nil
}

// GetProcedure retrieves a procedure by ID
func (s *ProcedureService) GetProcedure(ctx context.Context, id uuid.UUID) (*entity.Procedure, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if procedure == nil {
		return nil, apperror.NewNotFoundError("Procedure")
	}
	return procedure, nil
}

// ListProcedures lists procedures with pagination and search
func (s *ProcedureService) ListProcedures(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Procedure], error) {
	procedures, total, err := s.procedureRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(procedures, pag), nil
}

// UpdateProcedureInput represents the update procedure input
type UpdateProcedureInput struct {
	ID           uuid.UUID
	Name         *string
	Charge       *int64
	DoctorCharge *int64
	Notes        *string
	IsActive     *bool
}

// UpdateProcedure updates a catalog procedure. Appointments keep the
// charge frozen at booking time, so edits only affect future bookings.
func (s *ProcedureService) UpdateProcedure(ctx context.Context, input *UpdateProcedureInput) (*entity.Procedure, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if procedure == nil {
		return nil, apperror.NewNotFoundError("Procedure")
	}

	if input.Name != nil {
		procedure.Name = *input.Name
	}
	if input.Charge != nil {
		procedure.Charge = *input.Charge
	}
	if input.DoctorCharge != nil {
		procedure.DoctorCharge = *input.DoctorCharge
	}
	if input.Notes != nil {
		procedure.Notes = input.Notes
	}
	if input.IsActive != nil {
		procedure.IsActive = *input.IsActive
	}

	if err := s.procedureRepo.Update(ctx, procedure); err != nil {
		return nil, err
	}

	return procedure, nil
}

// DeleteProcedure removes a procedure from the catalog
func (s *ProcedureService) DeleteProcedure(ctx context.Context, id uuid.UUID) error {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if procedure == nil {
		return apperror.NewNotFoundError("Procedure")
	}

	return s.procedureRepo.Delete(ctx, id)
}

// LabService handles external labs and their test catalogs
type LabService struct {
	labRepo     repository.LabRepository
	labTestRepo repository.LabTestRepository
}

// NewLabService creates a new lab service
func NewLabService(labRepo repository.LabRepository, labTestRepo repository.LabTestRepository) *LabService {
	return &LabService{labRepo: labRepo, labTestRepo: labTestRepo}
}

// CreateLabInput represents the create lab input
type CreateLabInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
}

// CreateLab registers an external lab
func (s *LabService) CreateLab(ctx context.Context, input *CreateLabInput) (*entity.Lab, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	lab := &entity.Lab{
		ClinicID:      clinicID,
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		IsActive:      true,
	}

	if err := s.labRepo.Create(ctx, lab); err != nil {
		return nil, err
	}

	return lab, nil
}

// GetLab retrieves a lab by ID
func (s *LabService) GetLab(ctx context.Context, id uuid.UUID) (*entity.Lab, error) {
	lab, err := s.labRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, apperror.NewNotFoundError("Lab")
	}
	return lab, nil
}

// ListLabs lists labs with pagination and search
func (s *LabService) ListLabs(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Lab], error) {
	labs, total, err := s.labRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(labs, pag), nil
}

// UpdateLabInput represents the update lab input
type UpdateLabInput struct {
	ID            uuid.UUID
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
	IsActive      *bool
}

// UpdateLab updates a lab
func (s *LabService) UpdateLab(ctx context.Context, input *UpdateLabInput) (*entity.Lab, error) {
	lab, err := s.labRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, apperror.NewNotFoundError("Lab")
	}

	if input.Name != nil {
		lab.Name = *input.Name
	}
	if input.Email != nil {
		lab.Email = input.Email
	}
	if input.Phone != nil {
		lab.Phone = input.Phone
	}
	if input.Address != nil {
		lab.Address = input.Address
	}
	if input.ContactPerson != nil {
		lab.ContactPerson = input.ContactPerson
	}
	if input.IsActive != nil {
		lab.IsActive = *input.IsActive
	}

	if err := s.labRepo.Update(ctx, lab); err != nil {
		return nil, err
	}

	return lab, nil
}

// DeleteLab removes a lab
func (s *LabService) DeleteLab(ctx context.Context, id uuid.UUID) error {
	lab, err := s.labRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lab == nil {
		return apperror.NewNotFoundError("Lab")
	}

	return s.labRepo.Delete(ctx, id)
}

// CreateLabTestInput represents the create lab test input
type CreateLabTestInput struct {
	UserID uuid.UUID
	LabID  uuid.UUID
	Name   string
	Code   string
	Price  int64 // cents
}

// CreateLabTest adds a test to a lab's catalog
func (s *LabService) CreateLabTest(ctx context.Context, input *CreateLabTestInput) (*entity.LabTest, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	lab, err := s.labRepo.GetByID(ctx, input.LabID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, apperror.NewNotFoundError("Lab")
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateReferenceNo("LT-")
	}

	test := &entity.LabTest{
		ClinicID: clinicID,
		LabID:    input.LabID,
		Name:     input.Name,
		Code:     code,
		Price:    input.Price,
		IsActive: true,
	}

	if err := s.labTestRepo.Create(ctx, test); err != nil {
		return nil, err
	}

	return test, nil
}

// GetLabTests returns the tests offered through a lab
func (s *LabService) GetLabTests(ctx context.Context, labID uuid.UUID) ([]entity.LabTest, error) {
	return s.labTestRepo.GetByLabID(ctx, labID)
}

// ListLabTests lists lab tests across all labs
func (s *LabService) ListLabTests(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.LabTest], error) {
	tests, total, err := s.labTestRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(tests, pag), nil
}

// UpdateLabTestInput represents the update lab test input
type UpdateLabTestInput struct {
	ID       uuid.UUID
	Name     *string
	Price    *int64
	IsActive *bool
}

// UpdateLabTest updates a lab test
func (s *LabService) UpdateLabTest(ctx context.Context, input *UpdateLabTestInput) (*entity.LabTest, error) {
	test, err := s.labTestRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperror.NewNotFoundError("Lab test")
	}

	if input.Name != nil {
		test.Name = *input.Name
	}
	if input.Price != nil {
		test.Price = *input.Price
	}
	if input.IsActive != nil {
		test.IsActive = *input.IsActive
	}

	if err := s.labTestRepo.Update(ctx, test); err != nil {
		return nil, err
	}

	return test, nil
}

// DeleteLabTest removes a lab test
func (s *LabService) DeleteLabTest(ctx context.Context, id uuid.UUID) error {
	test, err := s.labTestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if test == nil {
		return apperror.NewNotFoundError("Lab test")
	}

	return s.labTestRepo.Delete(ctx, id)
}
