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

// ItemCategoryService handles inventory category operations
type ItemCategoryService struct {
	categoryRepo repository.ItemCategoryRepository
}

// NewItemCategoryService creates a new item category service
func NewItemCategoryService(categoryRepo repository.ItemCategoryRepository) *ItemCategoryService {
	return &ItemCategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateCategory creates a new category
func (s *ItemCategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.ItemCategory, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	slug := utils.Slugify(input.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.ItemCategory{
		ClinicID: clinicID,
		UserID:   input.UserID,
		Name:     input.Name,
		Slug:     slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *ItemCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.ItemCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with pagination and search
func (s *ItemCategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.ItemCategory], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory renames a category, regenerating its slug
func (s *ItemCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.ItemCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if name != "" && name != category.Name {
		slug := utils.Slugify(name)
		existing, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Name = name
		category.Slug = slug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category
func (s *ItemCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// UnitService handles measurement unit operations
type UnitService struct {
	unitRepo repository.UnitRepository
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo repository.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// CreateUnitInput represents the create unit input
type CreateUnitInput struct {
	UserID    uuid.UUID
	Name      string
	ShortCode string
}

// CreateUnit creates a new unit
func (s *UnitService) CreateUnit(ctx context.Context, input *CreateUnitInput) (*entity.Unit, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	slug := utils.Slugify(input.Name)

	existing, err := s.unitRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Unit with this name already exists")
	}

	unit := &entity.Unit{
		ClinicID:  clinicID,
		UserID:    input.UserID,
		Name:      input.Name,
		Slug:      slug,
		ShortCode: input.ShortCode,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// ListUnits lists units with pagination and search
func (s *UnitService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, pag), nil
}

// UpdateUnitInput represents the update unit input
type UpdateUnitInput struct {
	ID        uuid.UUID
	Name      *string
	ShortCode *string
}

// UpdateUnit updates a unit
func (s *UnitService) UpdateUnit(ctx context.Context, input *UpdateUnitInput) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	if input.Name != nil && *input.Name != unit.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.unitRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != unit.ID {
			return nil, apperror.NewConflictError("Unit with this name already exists")
		}
		unit.Name = *input.Name
		unit.Slug = slug
	}
	if input.ShortCode != nil {
		unit.ShortCode = *input.ShortCode
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// DeleteUnit deletes a unit
func (s *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}

	return s.unitRepo.Delete(ctx, id)
}
