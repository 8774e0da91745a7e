package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	domainRepo "github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

type stockPurchaseRepository struct {
	db *gorm.DB
}

// NewStockPurchaseRepository creates a new stock purchase repository
func NewStockPurchaseRepository(db *gorm.DB) domainRepo.StockPurchaseRepository {
	return &stockPurchaseRepository{db: db}
}

func (r *stockPurchaseRepository) Create(ctx context.Context, purchase *entity.StockPurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *stockPurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error) {
	var purchase entity.StockPurchase
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *stockPurchaseRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.StockPurchase, error) {
	var purchase entity.StockPurchase
	err := r.db.WithContext(ctx).Scopes(ClinicScope(ctx)).First(&purchase, "purchase_no = ?", purchaseNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *stockPurchaseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error) {
	var purchase entity.StockPurchase
	err := r.db.WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Details.Item").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *stockPurchaseRepository) Update(ctx context.Context, purchase *entity.StockPurchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *stockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockPurchase{}, "id = ?", id).Error
}

func (r *stockPurchaseRepository) List(ctx context.Context, params *domainRepo.StockPurchaseFilterParams) ([]entity.StockPurchase, int64, error) {
	var purchases []entity.StockPurchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockPurchase{}).Scopes(ClinicScope(ctx))

	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Supplier != "" {
		query = query.Where("supplier ILIKE ?", "%"+params.Supplier+"%")
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&purchases).Error

	return purchases, total, err
}

func (r *stockPurchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error {
	return r.db.WithContext(ctx).Model(&entity.StockPurchase{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *stockPurchaseRepository) GetPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockPurchase, int64, error) {
	var purchases []entity.StockPurchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockPurchase{}).Scopes(ClinicScope(ctx)).
		Where("status = ?", enum.PurchaseStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

type stockPurchaseDetailRepository struct {
	db *gorm.DB
}

// NewStockPurchaseDetailRepository creates a new stock purchase detail repository
func NewStockPurchaseDetailRepository(db *gorm.DB) domainRepo.StockPurchaseDetailRepository {
	return &stockPurchaseDetailRepository{db: db}
}

func (r *stockPurchaseDetailRepository) Create(ctx context.Context, detail *entity.StockPurchaseDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *stockPurchaseDetailRepository) CreateBatch(ctx context.Context, details []entity.StockPurchaseDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *stockPurchaseDetailRepository) GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.StockPurchaseDetail, error) {
	var details []entity.StockPurchaseDetail
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("purchase_id = ?", purchaseID).
		Find(&details).Error
	return details, err
}

func (r *stockPurchaseDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockPurchaseDetail{}, "id = ?", id).Error
}

func (r *stockPurchaseDetailRepository) DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockPurchaseDetail{}, "purchase_id = ?", purchaseID).Error
}
