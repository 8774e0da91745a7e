package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/pagination"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// StockPurchaseService handles incoming stock purchases
type StockPurchaseService struct {
	purchaseRepo       repository.StockPurchaseRepository
	purchaseDetailRepo repository.StockPurchaseDetailRepository
	inventoryRepo      repository.InventoryRepository
	batchRepo          repository.BatchRepository
}

// NewStockPurchaseService creates a new stock purchase service
func NewStockPurchaseService(
	purchaseRepo repository.StockPurchaseRepository,
	purchaseDetailRepo repository.StockPurchaseDetailRepository,
	inventoryRepo repository.InventoryRepository,
	batchRepo repository.BatchRepository,
) *StockPurchaseService {
	return &StockPurchaseService{
		purchaseRepo:       purchaseRepo,
		purchaseDetailRepo: purchaseDetailRepo,
		inventoryRepo:      inventoryRepo,
		batchRepo:          batchRepo,
	}
}

// PurchaseLineInput represents one line on a stock purchase
type PurchaseLineInput struct {
	ItemID     uuid.UUID
	Quantity   int
	UnitCost   int64 // cents
	BatchNo    string
	ExpiryDate *time.Time
}

// CreatePurchaseInput represents the create stock purchase input
type CreatePurchaseInput struct {
	UserID   uuid.UUID
	Supplier string
	Date     *time.Time
	Lines    []PurchaseLineInput
}

// CreatePurchase records a pending stock purchase with its lines. Stock
// only moves when the purchase is received.
func (s *StockPurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.StockPurchase, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("A purchase needs at least one line")
	}

	itemIDs := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		itemIDs = append(itemIDs, line.ItemID)
	}
	items, err := s.inventoryRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var totalAmount int64
	details := make([]entity.StockPurchaseDetail, 0, len(input.Lines))
	for _, line := range input.Lines {
		if _, ok := byID[line.ItemID]; !ok {
			return nil, apperror.NewNotFoundError("Inventory item")
		}
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive")
		}

		lineTotal := line.UnitCost * int64(line.Quantity)
		totalAmount += lineTotal

		batchNo := line.BatchNo
		if batchNo == "" {
			batchNo = utils.GenerateBatchNo()
		}

		details = append(details, entity.StockPurchaseDetail{
			ItemID:     line.ItemID,
			BatchNo:    batchNo,
			ExpiryDate: line.ExpiryDate,
			Quantity:   line.Quantity,
			UnitCost:   line.UnitCost,
			Total:      lineTotal,
		})
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	purchase := &entity.StockPurchase{
		ClinicID:    clinicID,
		UserID:      input.UserID,
		Supplier:    input.Supplier,
		Date:        date,
		PurchaseNo:  utils.GenerateReferenceNo("PUR-"),
		Status:      enum.PurchaseStatusPending,
		TotalAmount: totalAmount,
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	for i := range details {
		details[i].PurchaseID = purchase.ID
	}
	if err := s.purchaseDetailRepo.CreateBatch(ctx, details); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// GetPurchase retrieves a stock purchase with its lines
func (s *StockPurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists stock purchases with filtering
func (s *StockPurchaseService) ListPurchases(ctx context.Context, params *repository.StockPurchaseFilterParams) (*pagination.PaginatedResult[entity.StockPurchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// GetPendingPurchases returns purchases not yet received
func (s *StockPurchaseService) GetPendingPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockPurchase], error) {
	purchases, total, err := s.purchaseRepo.GetPending(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ReceivePurchase marks a purchase as received, adds the quantities to
// stock and opens an expiry-tracked batch for each line.
func (s *StockPurchaseService) ReceivePurchase(ctx context.Context, id uuid.UUID) (*entity.StockPurchase, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.PurchaseStatusReceived {
		return nil, apperror.NewConflictError("Purchase has already been received")
	}

	increments := make(map[uuid.UUID]int, len(purchase.Details))
	batches := make([]entity.Batch, 0, len(purchase.Details))
	for _, detail := range purchase.Details {
		increments[detail.ItemID] += detail.Quantity
		batches = append(batches, entity.Batch{
			ClinicID:   clinicID,
			ItemID:     detail.ItemID,
			BatchNo:    detail.BatchNo,
			ExpiryDate: detail.ExpiryDate,
			Quantity:   detail.Quantity,
			CostPrice:  detail.UnitCost,
		})
	}

	if err := s.inventoryRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if err := s.batchRepo.CreateBatch(ctx, batches); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, id, enum.PurchaseStatusReceived); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, id)
}

// DeletePurchase deletes a pending purchase. Received purchases have
// already moved stock and cannot be deleted.
func (s *StockPurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.PurchaseStatusReceived {
		return apperror.NewBadRequestError("Cannot delete a received purchase")
	}

	if err := s.purchaseDetailRepo.DeleteByPurchaseID(ctx, id); err != nil {
		return err
	}

	return s.purchaseRepo.Delete(ctx, id)
}
