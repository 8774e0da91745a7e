package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// ClinicService handles clinic-related operations
type ClinicService struct {
	clinicRepo repository.ClinicRepository
}

// NewClinicService creates a new clinic service
func NewClinicService(clinicRepo repository.ClinicRepository) *ClinicService {
	return &ClinicService{clinicRepo: clinicRepo}
}

// CreateClinicInput represents input for creating a clinic
type CreateClinicInput struct {
	Name     string
	Slug     string
	OwnerID  uuid.UUID
	Settings *entity.ClinicSettings
}

// CreateClinic creates a new clinic and enrolls the owner as a member
func (s *ClinicService) CreateClinic(ctx context.Context, input *CreateClinicInput) (*entity.Clinic, error) {
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	exists, err := s.clinicRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Clinic slug already exists")
	}

	settings := entity.DefaultClinicSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	clinic := &entity.Clinic{
		Name:     input.Name,
		Slug:     slug,
		OwnerID:  input.OwnerID,
		Settings: settings,
	}

	if err := s.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, err
	}

	membership := &entity.ClinicMembership{
		ClinicID: clinic.ID,
		UserID:   input.OwnerID,
		Role:     "owner",
	}
	_ = s.clinicRepo.AddMember(ctx, membership)

	return clinic, nil
}

// GetClinic retrieves a clinic by ID
func (s *ClinicService) GetClinic(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.ErrNotFound
	}
	return clinic, nil
}

// GetClinicBySlug retrieves a clinic by its slug
func (s *ClinicService) GetClinicBySlug(ctx context.Context, slug string) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.ErrNotFound
	}
	return clinic, nil
}

// GetUserClinics retrieves the clinics a user belongs to
func (s *ClinicService) GetUserClinics(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Clinic], error) {
	clinics, total, err := s.clinicRepo.GetUserClinics(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clinics, pag), nil
}

// UpdateClinicInput represents input for updating a clinic
type UpdateClinicInput struct {
	ID   uuid.UUID
	Name string
}

// UpdateClinic updates a clinic's profile
func (s *ClinicService) UpdateClinic(ctx context.Context, input *UpdateClinicInput) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Name != "" {
		clinic.Name = input.Name
	}

	if err := s.clinicRepo.Update(ctx, clinic); err != nil {
		return nil, err
	}

	return clinic, nil
}

// UpdateClinicSettings replaces the clinic settings document. The minimum
// partial payment percentage falls back to the default when out of range.
func (s *ClinicService) UpdateClinicSettings(ctx context.Context, id uuid.UUID, settings entity.ClinicSettings) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.ErrNotFound
	}

	if settings.RoundingMode == "" {
		settings.RoundingMode = enum.RoundingModeNone
	}
	if !settings.RoundingMode.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid rounding mode")
	}
	if settings.MinPartialPercent < 0 || settings.MinPartialPercent > 100 {
		settings.MinPartialPercent = entity.DefaultClinicSettings().MinPartialPercent
	}

	if err := s.clinicRepo.UpdateSettings(ctx, id, settings); err != nil {
		return nil, err
	}

	clinic.Settings = settings
	return clinic, nil
}

// InviteMemberInput represents input for inviting a user to a clinic
type InviteMemberInput struct {
	ClinicID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// InviteMember adds a user to a clinic's staff
func (s *ClinicService) InviteMember(ctx context.Context, input *InviteMemberInput) error {
	isMember, _ := s.clinicRepo.IsMember(ctx, input.ClinicID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this clinic")
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	membership := &entity.ClinicMembership{
		ClinicID: input.ClinicID,
		UserID:   input.UserID,
		Role:     role,
	}

	return s.clinicRepo.AddMember(ctx, membership)
}

// RemoveMember removes a user from a clinic. The owner cannot be removed.
func (s *ClinicService) RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error {
	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return err
	}
	if clinic == nil {
		return apperror.ErrNotFound
	}
	if clinic.OwnerID == userID {
		return apperror.NewBadRequestError("Cannot remove the clinic owner")
	}

	return s.clinicRepo.RemoveMember(ctx, clinicID, userID)
}

// GetClinicMembers retrieves all members of a clinic
func (s *ClinicService) GetClinicMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error) {
	members, err := s.clinicRepo.GetMembers(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	for i := range members {
		members[i].PopulateUserDetails()
	}

	return members, nil
}

// UpdateMemberRole updates a member's role in a clinic
func (s *ClinicService) UpdateMemberRole(ctx context.Context, clinicID, userID uuid.UUID, role string) error {
	return s.clinicRepo.UpdateMemberRole(ctx, clinicID, userID, role)
}

// ListAllClinics retrieves all clinics (for super admin use)
func (s *ClinicService) ListAllClinics(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Clinic], error) {
	clinics, total, err := s.clinicRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clinics, pag), nil
}

// AssignUserToClinicInput represents input for assigning a user to a clinic
type AssignUserToClinicInput struct {
	ClinicID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// AssignUserToClinic assigns a user to a clinic (for super admin use)
func (s *ClinicService) AssignUserToClinic(ctx context.Context, input *AssignUserToClinicInput) error {
	clinic, err := s.clinicRepo.GetByID(ctx, input.ClinicID)
	if err != nil {
		return err
	}
	if clinic == nil {
		return apperror.ErrNotFound
	}

	isMember, _ := s.clinicRepo.IsMember(ctx, input.ClinicID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this clinic")
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	membership := &entity.ClinicMembership{
		ClinicID: input.ClinicID,
		UserID:   input.UserID,
		Role:     role,
	}

	return s.clinicRepo.AddMember(ctx, membership)
}
