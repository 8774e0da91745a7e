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

type procedureRepository struct {
	db *gorm.DB
}

// NewProcedureRepository creates a new procedure repository
func NewProcedureRepository(db *gorm.DB) domainRepo.ProcedureRepository {
	return &procedureRepository{db: db}
}

func (r *procedureRepository) Create(ctx context.Context, procedure *entity.Procedure) error {
	return r.db.WithContext(ctx).Create(procedure).Error
}

func (r *procedureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := r.db.WithContext(ctx).Scopes(ClinicScope(ctx)).First(&procedure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &procedure, err
}

// GetByIDs retrieves multiple procedures in a single query
func (r *procedureRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Procedure, error) {
	if len(ids) == 0 {
		return []entity.Procedure{}, nil
	}
	var procedures []entity.Procedure
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Where("id IN ?", ids).
		Find(&procedures).Error
	return procedures, err
}

func (r *procedureRepository) Update(ctx context.Context, procedure *entity.Procedure) error {
	return r.db.WithContext(ctx).Save(procedure).Error
}

func (r *procedureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Procedure{}, "id = ?", id).Error
}

func (r *procedureRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Procedure, int64, error) {
	var procedures []entity.Procedure
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Procedure{}).Scopes(ClinicScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&procedures).Error

	return procedures, total, err
}

type labRepository struct {
	db *gorm.DB
}

// NewLabRepository creates a new lab repository
func NewLabRepository(db *gorm.DB) domainRepo.LabRepository {
	return &labRepository{db: db}
}

func (r *labRepository) Create(ctx context.Context, lab *entity.Lab) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

func (r *labRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lab, error) {
	var lab entity.Lab
	err := r.db.WithContext(ctx).Scopes(ClinicScope(ctx)).First(&lab, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lab, err
}

func (r *labRepository) Update(ctx context.Context, lab *entity.Lab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}

func (r *labRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Lab{}, "id = ?", id).Error
}

func (r *labRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lab, int64, error) {
	var labs []entity.Lab
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lab{}).Scopes(ClinicScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&labs).Error

	return labs, total, err
}

type labTestRepository struct {
	db *gorm.DB
}

// NewLabTestRepository creates a new lab test repository
func NewLabTestRepository(db *gorm.DB) domainRepo.LabTestRepository {
	return &labTestRepository{db: db}
}

func (r *labTestRepository) Create(ctx context.Context, test *entity.LabTest) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *labTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LabTest, error) {
	var test entity.LabTest
	err := r.db.WithContext(ctx).
		Preload("Lab").
		First(&test, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &test, err
}

func (r *labTestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LabTest, error) {
	if len(ids) == 0 {
		return []entity.LabTest{}, nil
	}
	var tests []entity.LabTest
	err := r.db.WithContext(ctx).
		Preload("Lab").
		Where("id IN ?", ids).
		Find(&tests).Error
	return tests, err
}

func (r *labTestRepository) GetByLabID(ctx context.Context, labID uuid.UUID) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	err := r.db.WithContext(ctx).
		Where("lab_id = ?", labID).
		Order("name ASC").
		Find(&tests).Error
	return tests, err
}

func (r *labTestRepository) Update(ctx context.Context, test *entity.LabTest) error {
	return r.db.WithContext(ctx).Save(test).Error
}

func (r *labTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LabTest{}, "id = ?", id).Error
}

func (r *labTestRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.LabTest, int64, error) {
	var tests []entity.LabTest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LabTest{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lab").
		Order("name ASC").
		Find(&tests).Error

	return tests, total, err
}
