package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/request"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
	"github.com/clinicore/clinicore-api/pkg/pagination"
)

// StockPurchaseHandler handles stock purchase HTTP requests
type StockPurchaseHandler struct {
	purchaseService *service.StockPurchaseService
}

// NewStockPurchaseHandler creates a new stock purchase handler
func NewStockPurchaseHandler(purchaseService *service.StockPurchaseService) *StockPurchaseHandler {
	return &StockPurchaseHandler{purchaseService: purchaseService}
}

// Create handles recording a pending stock purchase
func (h *StockPurchaseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	input := &service.CreatePurchaseInput{
		UserID:   *userID,
		Supplier: req.Supplier,
		Date:     date,
	}

	for _, line := range req.Lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			response.BadRequest(c, "Invalid item ID")
			return
		}
		expiry, err := parseDate(line.ExpiryDate)
		if err != nil {
			response.BadRequest(c, "Invalid expiry date, expected YYYY-MM-DD")
			return
		}
		input.Lines = append(input.Lines, service.PurchaseLineInput{
			ItemID:     itemID,
			Quantity:   line.Quantity,
			UnitCost:   toCents(line.UnitCost),
			BatchNo:    line.BatchNo,
			ExpiryDate: expiry,
		})
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", purchase)
}

// List handles listing stock purchases
func (h *StockPurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StockPurchaseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Supplier:  filter.Supplier,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	params.Pagination.Validate()

	switch filter.Status {
	case "pending":
		status := enum.PurchaseStatusPending
		params.Status = &status
	case "received":
		status := enum.PurchaseStatusReceived
		params.Status = &status
	}

	if start, err := parseDate(filter.StartDate); err == nil {
		params.StartDate = start
	}
	if end, err := parseDate(filter.EndDate); err == nil {
		params.EndDate = end
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// GetPending handles listing purchases not yet received
func (h *StockPurchaseHandler) GetPending(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.purchaseService.GetPendingPurchases(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pending purchases retrieved successfully", result)
}

// Get handles getting a single purchase with its lines
func (h *StockPurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Receive handles marking a purchase as received
func (h *StockPurchaseHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.ReceivePurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase received successfully", purchase)
}

// Delete handles deleting a pending purchase
func (h *StockPurchaseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
