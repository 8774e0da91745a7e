package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// StockPurchaseRepository defines the interface for stock purchase data operations
type StockPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.StockPurchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error)
	GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.StockPurchase, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error)
	Update(ctx context.Context, purchase *entity.StockPurchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StockPurchaseFilterParams) ([]entity.StockPurchase, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error
	GetPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.StockPurchase, int64, error)
}

// StockPurchaseFilterParams contains filtering parameters for stock purchase queries
type StockPurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseStatus
	Supplier   string
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// StockPurchaseDetailRepository defines the interface for stock purchase line operations
type StockPurchaseDetailRepository interface {
	Create(ctx context.Context, detail *entity.StockPurchaseDetail) error
	CreateBatch(ctx context.Context, details []entity.StockPurchaseDetail) error
	GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.StockPurchaseDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error
}
