package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/application/feed"
	"github.com/clinicore/clinicore-api/internal/domain/billing"
	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/enum"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	infraRepo "github.com/clinicore/clinicore-api/internal/infrastructure/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
	"github.com/clinicore/clinicore-api/pkg/email"
	"github.com/clinicore/clinicore-api/pkg/pagination"
	"github.com/clinicore/clinicore-api/pkg/utils"
)

// CheckoutService handles POS checkout: bill aggregation, rounding,
// payment capture, stock movements and appointment settlement
type CheckoutService struct {
	saleRepo         repository.SaleRepository
	saleItemRepo     repository.SaleItemRepository
	appointmentRepo  repository.AppointmentRepository
	procedureRepo    repository.ProcedureRepository
	labTestRepo      repository.LabTestRepository
	inventoryRepo    repository.InventoryRepository
	patientRepo      repository.PatientRepository
	clinicRepo       repository.ClinicRepository
	reconcileService *ReconcileService
	emailService     *email.EmailService
	hub              *feed.Hub
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	appointmentRepo repository.AppointmentRepository,
	procedureRepo repository.ProcedureRepository,
	labTestRepo repository.LabTestRepository,
	inventoryRepo repository.InventoryRepository,
	patientRepo repository.PatientRepository,
	clinicRepo repository.ClinicRepository,
	reconcileService *ReconcileService,
	emailService *email.EmailService,
	hub *feed.Hub,
) *CheckoutService {
	return &CheckoutService{
		saleRepo:         saleRepo,
		saleItemRepo:     saleItemRepo,
		appointmentRepo:  appointmentRepo,
		procedureRepo:    procedureRepo,
		labTestRepo:      labTestRepo,
		inventoryRepo:    inventoryRepo,
		patientRepo:      patientRepo,
		clinicRepo:       clinicRepo,
		reconcileService: reconcileService,
		emailService:     emailService,
		hub:              hub,
	}
}

// ProcedureCartLine is a catalog procedure added to the cart
type ProcedureCartLine struct {
	ProcedureID uuid.UUID
	Quantity    int
}

// LabTestCartLine is a lab test added to the cart. The lab's own invoice
// number is mandatory so the sale can be traced back to the external lab.
type LabTestCartLine struct {
	LabTestID    uuid.UUID
	Quantity     int
	LabInvoiceNo string
}

// PharmacyCartLine is a stock item added to the cart
type PharmacyCartLine struct {
	ItemID   uuid.UUID
	BatchID  *uuid.UUID
	Quantity int
}

// CheckoutInput represents one POS checkout
type CheckoutInput struct {
	UserID         uuid.UUID
	AppointmentID  *uuid.UUID
	PatientID      *uuid.UUID
	PatientName    string
	PatientContact string

	Procedures []ProcedureCartLine
	LabTests   []LabTestCartLine
	Pharmacy   []PharmacyCartLine

	// PrescriptionIDs are the appointment prescriptions being settled
	// through this sale.
	PrescriptionIDs []uuid.UUID

	PaymentMethod enum.PaymentMethod
	Pay           int64 // cents, initial payment for partial/credit
	CardDetail    *string

	ReceiptEmail string
}

// Checkout aggregates the cart into a bill, applies the clinic rounding
// policy, captures the payment and writes the sale with its line items.
// Pharmacy stock is decremented atomically and restored if any later step
// fails.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	clinicID, ok := infraRepo.GetClinicID(ctx)
	if !ok {
		return nil, apperror.ErrClinicRequired
	}

	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}
	settings := clinic.Settings

	// Appointment context: the visit fee and the procedures booked with it
	// join the bill. A fee already collected at the appointments desk is
	// excluded from the payable total but still itemized on the receipt.
	var appointment *entity.Appointment
	var bill billing.BillInput
	if input.AppointmentID != nil {
		appointment, err = s.appointmentRepo.GetWithProcedures(ctx, *input.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, apperror.NewNotFoundError("Appointment")
		}
		if appointment.Payment.SaleID != nil {
			return nil, apperror.NewConflictError("Appointment has already been checked out")
		}

		bill.AppointmentFee = appointment.BillableAmount()
		bill.FeeAlreadyPaid = appointment.Payment.IsPaid
		for _, ap := range appointment.Procedures {
			bill.AppointmentProcedures = append(bill.AppointmentProcedures, billing.AppointmentProcedureLine{
				DoctorCharge: ap.DoctorCharge,
			})
		}

		if input.PatientName == "" {
			input.PatientName = appointment.PatientName
		}
		if input.PatientContact == "" {
			input.PatientContact = appointment.PatientContact
		}
		if input.PatientID == nil {
			input.PatientID = appointment.PatientID
		}
	}

	if input.PatientName == "" {
		return nil, apperror.NewBadRequestError("Patient name is required")
	}

	items := make([]entity.SaleItem, 0, len(input.Procedures)+len(input.LabTests)+len(input.Pharmacy))

	procedureItems, procedureLines, err := s.resolveProcedureLines(ctx, input.Procedures)
	if err != nil {
		return nil, err
	}
	items = append(items, procedureItems...)
	bill.Procedures = procedureLines

	labItems, labLines, err := s.resolveLabTestLines(ctx, input.LabTests)
	if err != nil {
		return nil, err
	}
	items = append(items, labItems...)
	bill.LabTests = labLines

	pharmacyItems, pharmacyLines, decrements, err := s.resolvePharmacyLines(ctx, input.Pharmacy)
	if err != nil {
		return nil, err
	}
	items = append(items, pharmacyItems...)
	bill.Pharmacy = pharmacyLines

	totals := billing.Aggregate(bill)
	rounded, adjustment := billing.Round(totals.PreRoundingTotal, settings.RoundingMode)

	if rounded == 0 && input.PaymentMethod != enum.PaymentMethodFree {
		return nil, apperror.NewBadRequestError("Nothing payable at checkout")
	}

	total := rounded
	var originalTotal, pay int64
	switch input.PaymentMethod {
	case enum.PaymentMethodFree:
		// Free sales zero the bill but keep the forgone amount for audit.
		originalTotal = rounded
		total = 0
	case enum.PaymentMethodCash, enum.PaymentMethodCard:
		pay = total
	case enum.PaymentMethodPartial:
		minimum := total * int64(settings.MinPartialPercent) / 100
		if input.Pay < minimum {
			return nil, apperror.NewBadRequestError(fmt.Sprintf(
				"Partial payment must be at least %d%% of the total", settings.MinPartialPercent))
		}
		if input.Pay >= total {
			return nil, apperror.NewBadRequestError("Partial payment covers the whole bill; use cash or card instead")
		}
		pay = input.Pay
	case enum.PaymentMethodCredit:
		if input.Pay > total {
			return nil, apperror.NewBadRequestError("Payment exceeds the bill total")
		}
		pay = input.Pay
	}

	// Stock leaves the shelf before the sale is written; any failure after
	// this point must put it back.
	if len(decrements) > 0 {
		failedIDs, err := s.inventoryRepo.AtomicDecrementBatch(ctx, decrements)
		if err != nil {
			return nil, err
		}
		if len(failedIDs) > 0 {
			names := s.itemNames(ctx, failedIDs)
			return nil, apperror.NewConflictError(fmt.Sprintf("Insufficient stock for: %v", names))
		}
	}

	sale := &entity.Sale{
		ClinicID:       clinicID,
		UserID:         input.UserID,
		AppointmentID:  input.AppointmentID,
		PatientID:      input.PatientID,
		PatientName:    input.PatientName,
		PatientContact: input.PatientContact,
		SaleDate:       time.Now(),
		InvoiceNo:      utils.GenerateInvoiceNo(settings.InvoicePrefix),

		ProceduresTotal:     totals.ProceduresTotal,
		ApptProceduresTotal: totals.ApptProceduresTotal,
		LabTestsTotal:       totals.LabTestsTotal,
		PharmacyTotal:       totals.PharmacyTotal,
		AppointmentFee:      totals.AppointmentFee,
		FeeAlreadyPaid:      totals.FeeAlreadyPaid,

		SubTotal:           totals.PreRoundingTotal,
		RoundingMode:       settings.RoundingMode,
		RoundingAdjustment: adjustment,
		Total:              total,
		OriginalTotal:      originalTotal,

		PaymentMethod: input.PaymentMethod,
		CardDetail:    input.CardDetail,
		Pay:           pay,
		// The full total is outstanding until the initial payment is
		// recorded below; RecordPayment brings it down to the real due.
		Due: total,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.restoreStock(ctx, decrements)
		return nil, err
	}

	for i := range items {
		items[i].SaleID = sale.ID
	}
	if err := s.saleItemRepo.CreateBatch(ctx, items); err != nil {
		_ = s.saleRepo.Delete(ctx, sale.ID)
		s.restoreStock(ctx, decrements)
		return nil, err
	}

	if pay > 0 {
		paidBy := input.UserID.String()
		payment := &entity.SalePayment{
			SaleID:     sale.ID,
			Amount:     pay,
			Method:     input.PaymentMethod,
			ReceivedBy: &paidBy,
			PaidAt:     sale.SaleDate,
		}
		if err := s.saleRepo.RecordPayment(ctx, payment); err != nil {
			return nil, err
		}
	}

	if appointment != nil {
		if !appointment.Payment.IsPaid {
			if err := s.appointmentRepo.MarkPaid(ctx, appointment.ID, input.UserID.String(), &sale.ID); err != nil {
				return nil, err
			}
		}
		if err := s.reconcileService.SettleThroughPOS(ctx, appointment.ID, input.PrescriptionIDs, input.UserID.String()); err != nil {
			return nil, err
		}
	}

	created, err := s.saleRepo.GetWithItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(feed.EventSaleCompleted, clinicID.String(), created)
	}

	if input.ReceiptEmail != "" && settings.EmailNotifications && s.emailService != nil {
		go s.sendReceipt(input.ReceiptEmail, clinic, created)
	}

	return created, nil
}

func (s *CheckoutService) resolveProcedureLines(ctx context.Context, lines []ProcedureCartLine) ([]entity.SaleItem, []billing.ProcedureLine, error) {
	if len(lines) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProcedureID)
	}
	found, err := s.procedureRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]entity.Procedure, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]entity.SaleItem, 0, len(lines))
	billLines := make([]billing.ProcedureLine, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProcedureID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError("Procedure")
		}
		if line.Quantity <= 0 {
			return nil, nil, apperror.NewBadRequestError("Quantity must be positive")
		}

		refID := p.ID
		items = append(items, entity.SaleItem{
			Kind:      enum.SaleItemKindProcedure,
			RefID:     &refID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Charge,
			Total:     p.Charge * int64(line.Quantity),
		})
		billLines = append(billLines, billing.ProcedureLine{Charge: p.Charge, Quantity: line.Quantity})
	}
	return items, billLines, nil
}

func (s *CheckoutService) resolveLabTestLines(ctx context.Context, lines []LabTestCartLine) ([]entity.SaleItem, []billing.LabTestLine, error) {
	if len(lines) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.LabTestID)
	}
	found, err := s.labTestRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]entity.LabTest, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	items := make([]entity.SaleItem, 0, len(lines))
	billLines := make([]billing.LabTestLine, 0, len(lines))
	for _, line := range lines {
		t, ok := byID[line.LabTestID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError("Lab test")
		}
		if line.Quantity <= 0 {
			return nil, nil, apperror.NewBadRequestError("Quantity must be positive")
		}
		if line.LabInvoiceNo == "" {
			return nil, nil, apperror.NewBadRequestError("Lab invoice number is required for lab test items")
		}

		refID := t.ID
		labInvoiceNo := line.LabInvoiceNo
		items = append(items, entity.SaleItem{
			Kind:         enum.SaleItemKindLabTest,
			RefID:        &refID,
			Name:         t.Name,
			Quantity:     line.Quantity,
			UnitPrice:    t.Price,
			Total:        t.Price * int64(line.Quantity),
			LabInvoiceNo: &labInvoiceNo,
		})
		billLines = append(billLines, billing.LabTestLine{Price: t.Price, Quantity: line.Quantity})
	}
	return items, billLines, nil
}

func (s *CheckoutService) resolvePharmacyLines(ctx context.Context, lines []PharmacyCartLine) ([]entity.SaleItem, []billing.PharmacyLine, map[uuid.UUID]int, error) {
	if len(lines) == 0 {
		return nil, nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	found, err := s.inventoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	byID := make(map[uuid.UUID]entity.InventoryItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	items := make([]entity.SaleItem, 0, len(lines))
	billLines := make([]billing.PharmacyLine, 0, len(lines))
	decrements := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		stock, ok := byID[line.ItemID]
		if !ok {
			return nil, nil, nil, apperror.NewNotFoundError("Inventory item")
		}
		if line.Quantity <= 0 {
			return nil, nil, nil, apperror.NewBadRequestError("Quantity must be positive")
		}

		refID := stock.ID
		lineTotal := stock.SellingPrice * int64(line.Quantity)
		items = append(items, entity.SaleItem{
			Kind:      enum.SaleItemKindPharmacy,
			RefID:     &refID,
			BatchID:   line.BatchID,
			Name:      stock.Name,
			Quantity:  line.Quantity,
			UnitPrice: stock.SellingPrice,
			Total:     lineTotal,
		})
		billLines = append(billLines, billing.PharmacyLine{TotalPrice: lineTotal})
		decrements[line.ItemID] += line.Quantity
	}
	return items, billLines, decrements, nil
}

func (s *CheckoutService) itemNames(ctx context.Context, ids []uuid.UUID) []string {
	names := make([]string, 0, len(ids))
	items, err := s.inventoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		for _, id := range ids {
			names = append(names, id.String())
		}
		return names
	}
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func (s *CheckoutService) restoreStock(ctx context.Context, decrements map[uuid.UUID]int) {
	if len(decrements) == 0 {
		return
	}
	_ = s.inventoryRepo.AtomicIncrementBatch(ctx, decrements)
}

func (s *CheckoutService) sendReceipt(toEmail string, clinic *entity.Clinic, sale *entity.Sale) {
	_ = s.emailService.SendReceiptEmail(toEmail, email.ReceiptData{
		ClinicName:     clinic.Name,
		CurrencySymbol: clinic.Settings.CurrencySymbol,
		InvoiceNo:      sale.InvoiceNo,
		PatientName:    sale.PatientName,
		SubTotal:       sale.SubTotal,
		Rounding:       sale.RoundingAdjustment,
		Total:          sale.Total,
		Paid:           sale.Pay,
		Due:            sale.Due,
	})
}

// GetSale retrieves a sale with its line items
func (s *CheckoutService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByInvoiceNo retrieves a sale by its invoice number
func (s *CheckoutService) GetSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *CheckoutService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales using cursor-based pagination
func (s *CheckoutService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sl entity.Sale) string { return sl.ID.String() },
		func(sl entity.Sale) time.Time { return sl.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// ListDueSales lists partial and credit sales with an outstanding balance
func (s *CheckoutService) ListDueSales(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.GetDueSales(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// PayDueInput represents a follow-up payment against a due sale
type PayDueInput struct {
	SaleID     uuid.UUID
	Amount     int64 // cents
	Method     enum.PaymentMethod
	ReceivedBy string
}

// PayDue records a follow-up payment on a partial or credit sale
func (s *CheckoutService) PayDue(ctx context.Context, input *PayDueInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.IsSettled() {
		return nil, apperror.ErrAlreadySettled
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if input.Amount > sale.Due {
		return nil, apperror.NewBadRequestError("Payment exceeds the outstanding balance")
	}

	receivedBy := input.ReceivedBy
	payment := &entity.SalePayment{
		SaleID:     sale.ID,
		Amount:     input.Amount,
		Method:     input.Method,
		ReceivedBy: &receivedBy,
		PaidAt:     time.Now(),
	}
	if err := s.saleRepo.RecordPayment(ctx, payment); err != nil {
		return nil, err
	}

	return s.saleRepo.GetByID(ctx, sale.ID)
}
