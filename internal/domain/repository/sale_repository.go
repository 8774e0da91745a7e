package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// GetDueSales returns partial and credit sales with an outstanding balance.
	GetDueSales(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// RecordPayment appends a payment and reduces the due balance.
	RecordPayment(ctx context.Context, payment *entity.SalePayment) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentMethod *enum.PaymentMethod
	PatientID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	OnlyDue       bool
	SortBy        string
	SortOrder     string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Search        string
	PaymentMethod *enum.PaymentMethod
	PatientID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	OnlyDue       bool
}

// SaleItemRepository defines the interface for sale line item operations
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}
