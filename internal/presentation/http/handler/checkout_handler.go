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

// CheckoutHandler handles POS checkout and sale HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	receiptService  *service.ReceiptService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService, receiptService *service.ReceiptService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, receiptService: receiptService}
}

// Checkout handles one POS checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CheckoutInput{
		UserID:         *userID,
		AppointmentID:  parseUUIDPtr(req.AppointmentID),
		PatientID:      parseUUIDPtr(req.PatientID),
		PatientName:    req.PatientName,
		PatientContact: req.PatientContact,
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		Pay:            toCents(req.Pay),
		CardDetail:     req.CardDetail,
		ReceiptEmail:   req.ReceiptEmail,
	}

	for _, line := range req.Procedures {
		procedureID, err := uuid.Parse(line.ProcedureID)
		if err != nil {
			response.BadRequest(c, "Invalid procedure ID")
			return
		}
		input.Procedures = append(input.Procedures, service.ProcedureCartLine{
			ProcedureID: procedureID,
			Quantity:    line.Quantity,
		})
	}

	for _, line := range req.LabTests {
		labTestID, err := uuid.Parse(line.LabTestID)
		if err != nil {
			response.BadRequest(c, "Invalid lab test ID")
			return
		}
		input.LabTests = append(input.LabTests, service.LabTestCartLine{
			LabTestID:    labTestID,
			Quantity:     line.Quantity,
			LabInvoiceNo: line.LabInvoiceNo,
		})
	}

	for _, line := range req.Pharmacy {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			response.BadRequest(c, "Invalid inventory item ID")
			return
		}
		input.Pharmacy = append(input.Pharmacy, service.PharmacyCartLine{
			ItemID:   itemID,
			BatchID:  parseUUIDPtr(line.BatchID),
			Quantity: line.Quantity,
		})
	}

	for _, idStr := range req.PrescriptionIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			response.BadRequest(c, "Invalid prescription ID")
			return
		}
		input.PrescriptionIDs = append(input.PrescriptionIDs, id)
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Checkout completed successfully", sale)
}

// Get handles getting a single sale with its line items
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.checkoutService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByInvoiceNo handles looking a sale up by invoice number
func (h *CheckoutHandler) GetByInvoiceNo(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")
	if invoiceNo == "" {
		response.BadRequest(c, "Invoice number is required")
		return
	}

	sale, err := h.checkoutService.GetSaleByInvoiceNo(c.Request.Context(), invoiceNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *CheckoutHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		PatientID: parseUUIDPtr(filter.PatientID),
		OnlyDue:   filter.OnlyDue,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	params.Pagination.Validate()

	if filter.PaymentMethod != "" {
		method := enum.PaymentMethod(filter.PaymentMethod)
		if method.IsValid() {
			params.PaymentMethod = &method
		}
	}
	if start, err := parseDate(filter.StartDate); err == nil {
		params.StartDate = start
	}
	if end, err := parseDate(filter.EndDate); err == nil {
		params.EndDate = end
	}

	result, err := h.checkoutService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// listWithCursor handles listing sales with cursor-based pagination
func (h *CheckoutHandler) listWithCursor(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search:    filter.Search,
		PatientID: parseUUIDPtr(filter.PatientID),
		OnlyDue:   filter.OnlyDue,
	}
	params.Cursor.Validate()

	if filter.PaymentMethod != "" {
		method := enum.PaymentMethod(filter.PaymentMethod)
		if method.IsValid() {
			params.PaymentMethod = &method
		}
	}
	if start, err := parseDate(filter.StartDate); err == nil {
		params.StartDate = start
	}
	if end, err := parseDate(filter.EndDate); err == nil {
		params.EndDate = end
	}

	result, err := h.checkoutService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Sales retrieved successfully", result)
}

// ListDue handles listing sales with an outstanding balance
func (h *CheckoutHandler) ListDue(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.checkoutService.ListDueSales(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due sales retrieved successfully", result)
}

// PayDue handles a follow-up payment against a due sale
func (h *CheckoutHandler) PayDue(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method := enum.PaymentMethod(req.Method)
	if !method.IsValid() {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	sale, err := h.checkoutService.PayDue(c.Request.Context(), &service.PayDueInput{
		SaleID:     id,
		Amount:     toCents(req.Amount),
		Method:     method,
		ReceivedBy: userID.String(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", sale)
}

// Receipt handles composing a printable receipt for a sale
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated successfully", receipt)
}

// ReceiptByInvoiceNo handles composing a receipt looked up by invoice number
func (h *CheckoutHandler) ReceiptByInvoiceNo(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")
	if invoiceNo == "" {
		response.BadRequest(c, "Invoice number is required")
		return
	}

	receipt, err := h.receiptService.BuildReceiptByInvoiceNo(c.Request.Context(), invoiceNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated successfully", receipt)
}
