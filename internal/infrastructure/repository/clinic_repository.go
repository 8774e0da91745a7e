package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	domainRepo "github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository
func NewClinicRepository(db *gorm.DB) domainRepo.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *entity.Clinic) error {
	return r.db.WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) GetBySlug(ctx context.Context, slug string) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := r.db.WithContext(ctx).First(&clinic, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) Update(ctx context.Context, clinic *entity.Clinic) error {
	return r.db.WithContext(ctx).Save(clinic).Error
}

func (r *clinicRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.ClinicSettings) error {
	return r.db.WithContext(ctx).Model(&entity.Clinic{}).
		Where("id = ?", id).
		Update("settings", settings).Error
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Clinic{}, "id = ?", id).Error
}

func (r *clinicRepository) GetUserClinics(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Clinic, int64, error) {
	var clinics []entity.Clinic
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Clinic{}).
		Joins("JOIN clinic_memberships ON clinic_memberships.clinic_id = clinics.id").
		Where("clinic_memberships.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("clinics.name ASC").
		Find(&clinics).Error

	return clinics, total, err
}

func (r *clinicRepository) AddMember(ctx context.Context, membership *entity.ClinicMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *clinicRepository) RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.ClinicMembership{}, "clinic_id = ? AND user_id = ?", clinicID, userID).Error
}

func (r *clinicRepository) GetMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error) {
	var memberships []entity.ClinicMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("clinic_id = ?", clinicID).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	for i := range memberships {
		memberships[i].PopulateUserDetails()
	}
	return memberships, nil
}

func (r *clinicRepository) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ClinicMembership{}).
		Where("clinic_id = ? AND user_id = ?", clinicID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *clinicRepository) GetMembership(ctx context.Context, clinicID, userID uuid.UUID) (*entity.ClinicMembership, error) {
	var membership entity.ClinicMembership
	err := r.db.WithContext(ctx).
		First(&membership, "clinic_id = ? AND user_id = ?", clinicID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *clinicRepository) UpdateMemberRole(ctx context.Context, clinicID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&entity.ClinicMembership{}).
		Where("clinic_id = ? AND user_id = ?", clinicID, userID).
		Update("role", role).Error
}

func (r *clinicRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Clinic{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *clinicRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Clinic, int64, error) {
	var clinics []entity.Clinic
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Clinic{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&clinics).Error

	return clinics, total, err
}

func (r *clinicRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Clinic{}).Count(&count).Error
	return count, err
}
