package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// InventoryService handles pharmacy inventory operations
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	categoryRepo  repository.ItemCategoryRepository
	unitRepo      repository.UnitRepository
	batchRepo     repository.BatchRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	categoryRepo repository.ItemCategoryRepository,
	unitRepo repository.UnitRepository,
	batchRepo repository.BatchRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		categoryRepo:  categoryRepo,
		unitRepo:      unitRepo,
		batchRepo:     batchRepo,
	}
}

// CreateItemInput represents the create inventory item input
type CreateItemInput struct {
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          string
	Code          string
	Quantity      int
	QuantityAlert int
	BuyingPrice   int64 // cents
	SellingPrice  int64 // cents
	Notes         *string
}

// CreateItem creates a new inventory item
func (s *InventoryService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.InventoryItem, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateItemCode()
	}

	existing, err := s.inventoryRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item code already exists")
	}

	item := &entity.InventoryItem{
		ClinicID:      clinicID,
		UserID:        input.UserID,
		CategoryID:    input.CategoryID,
		UnitID:        input.UnitID,
		Name:          input.Name,
		Slug:          utils.Slugify(input.Name),
		Code:          code,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		BuyingPrice:   input.BuyingPrice,
		SellingPrice:  input.SellingPrice,
		Notes:         input.Notes,
		IsActive:      true,
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return s.inventoryRepo.GetByID(ctx, item.ID)
}

// GetItem retrieves an inventory item by ID
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

// ListItems lists inventory items with filtering
func (s *InventoryService) ListItems(ctx context.Context, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.inventoryRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListItemsWithCursor lists inventory items with cursor-based pagination
func (s *InventoryService) ListItemsWithCursor(ctx context.Context, params *repository.InventoryCursorFilterParams) (*pagination.CursorPaginatedResult[entity.InventoryItem], error) {
	items, err := s.inventoryRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, page := pagination.NewCursorPagination(items, params.Cursor.Limit,
		func(i entity.InventoryItem) string { return i.ID.String() },
		func(i entity.InventoryItem) time.Time { return i.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(page, cursorPag), nil
}

// UpdateItemInput represents the update inventory item input
type UpdateItemInput struct {
	ID            uuid.UUID
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          *string
	Code          *string
	QuantityAlert *int
	BuyingPrice   *int64
	SellingPrice  *int64
	Notes         *string
	IsActive      *bool
}

// UpdateItem updates an inventory item. Quantity is deliberately not
// editable here; stock moves through purchases and checkout only.
func (s *InventoryService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	if input.Code != nil && *input.Code != item.Code {
		existing, err := s.inventoryRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, apperror.NewConflictError("Item code already exists")
		}
		item.Code = *input.Code
	}

	if input.CategoryID != nil {
		item.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		item.UnitID = input.UnitID
	}
	if input.Name != nil {
		item.Name = *input.Name
		item.Slug = utils.Slugify(*input.Name)
	}
	if input.QuantityAlert != nil {
		item.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		item.BuyingPrice = *input.BuyingPrice
	}
	if input.SellingPrice != nil {
		item.SellingPrice = *input.SellingPrice
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return s.inventoryRepo.GetByID(ctx, item.ID)
}

// DeleteItem deletes an inventory item
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Inventory item")
	}

	return s.inventoryRepo.Delete(ctx, id)
}

// GetLowStockItems returns items at or below their alert quantity
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.GetLowStock(ctx)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ItemID uuid.UUID
	Delta  int // positive adds stock, negative removes
}

// AdjustStock applies a manual stock correction, e.g. after a stocktake.
// Negative adjustments fail rather than drive the quantity below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	switch {
	case input.Delta > 0:
		err = s.inventoryRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{input.ItemID: input.Delta})
		if err != nil {
			return nil, err
		}
	case input.Delta < 0:
		ok, err := s.inventoryRepo.AtomicDecrementQuantity(ctx, input.ItemID, -input.Delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.ErrInsufficientStock
		}
	}

	return s.inventoryRepo.GetByID(ctx, input.ItemID)
}

// GetItemBatches returns the stock batches of an item
func (s *InventoryService) GetItemBatches(ctx context.Context, itemID uuid.UUID) ([]entity.Batch, error) {
	return s.batchRepo.GetByItemID(ctx, itemID)
}

// ImportItemRow represents a single row from an inventory import file
type ImportItemRow struct {
	Name          string
	Code          string
	Quantity      int
	QuantityAlert int
	BuyingPrice   int64 // cents
	SellingPrice  int64 // cents
	Notes         string
	CategoryName  string
	UnitName      string
}

// ImportResult contains the result of an inventory import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportItems validates and bulk-creates inventory items from parsed
// import rows. Categories and units are matched by name.
func (s *InventoryService) ImportItems(ctx context.Context, userID uuid.UUID, rows []ImportItemRow) (*ImportResult, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	categoryMap := make(map[string]*uuid.UUID)
	unitMap := make(map[string]*uuid.UUID)

	categories, _, _ := s.categoryRepo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 1000}, "")
	for i := range categories {
		categoryMap[strings.ToLower(categories[i].Name)] = &categories[i].ID
	}

	units, _, _ := s.unitRepo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 1000}, "")
	for i := range units {
		unitMap[strings.ToLower(units[i].Name)] = &units[i].ID
	}

	seenCodes := make(map[string]int)

	var validItems []entity.InventoryItem
	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header

		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateItemCode()
		}

		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		existing, err := s.inventoryRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existing != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Item code '%s' already exists", code),
			})
			continue
		}

		seenCodes[code] = rowNum

		slug := utils.Slugify(row.Name) + "-" + strings.ToLower(uuid.New().String()[:8])

		var categoryID *uuid.UUID
		if row.CategoryName != "" {
			if id, ok := categoryMap[strings.ToLower(strings.TrimSpace(row.CategoryName))]; ok {
				categoryID = id
			}
		}

		var unitID *uuid.UUID
		if row.UnitName != "" {
			if id, ok := unitMap[strings.ToLower(strings.TrimSpace(row.UnitName))]; ok {
				unitID = id
			}
		}

		item := entity.InventoryItem{
			ClinicID:      clinicID,
			UserID:        userID,
			CategoryID:    categoryID,
			UnitID:        unitID,
			Name:          strings.TrimSpace(row.Name),
			Slug:          slug,
			Code:          code,
			Quantity:      row.Quantity,
			QuantityAlert: row.QuantityAlert,
			BuyingPrice:   row.BuyingPrice,
			SellingPrice:  row.SellingPrice,
			IsActive:      true,
		}
		if row.Notes != "" {
			notes := row.Notes
			item.Notes = &notes
		}

		validItems = append(validItems, item)
	}

	if len(validItems) > 0 {
		if err := s.inventoryRepo.CreateBatch(ctx, validItems); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import items: "+err.Error())
		}
	}

	result.Successful = len(validItems)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
