package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// InventoryRepository defines the interface for pharmacy inventory operations
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	CreateBatch(ctx context.Context, items []entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	// GetByIDs retrieves multiple items in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.InventoryItem, error)
	GetByCode(ctx context.Context, code string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	ListWithCursor(ctx context.Context, params *InventoryCursorFilterParams) ([]entity.InventoryItem, error)
	GetLowStock(ctx context.Context) ([]entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	// AtomicDecrementQuantity atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicDecrementBatch atomically decrements stock for multiple items.
	// Returns the IDs that failed on insufficient stock. If any item fails,
	// the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple items (for refunds/returns).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// InventoryFilterParams contains filtering parameters for inventory queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// InventoryCursorFilterParams contains cursor-based filtering parameters for inventory queries
type InventoryCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	LowStock   bool
}

// ItemCategoryRepository defines the interface for item category operations
type ItemCategoryRepository interface {
	Create(ctx context.Context, category *entity.ItemCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ItemCategory, error)
	GetBySlug(ctx context.Context, slug string) (*entity.ItemCategory, error)
	Update(ctx context.Context, category *entity.ItemCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ItemCategory, int64, error)
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error)
}

// BatchRepository defines the interface for stock batch operations
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	CreateBatch(ctx context.Context, batches []entity.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error)
	GetByItemID(ctx context.Context, itemID uuid.UUID) ([]entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	Delete(ctx context.Context, id uuid.UUID) error
	// GetExpiring returns batches expiring on or before the cutoff date.
	GetExpiring(ctx context.Context, cutoff time.Time) ([]entity.Batch, error)
}
