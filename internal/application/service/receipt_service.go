package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
	"github.com/clinicore/clinicore-api/pkg/apperror"
)

// ReceiptService composes printable receipt documents from sale data
type ReceiptService struct {
	saleRepo        repository.SaleRepository
	clinicRepo      repository.ClinicRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	saleRepo repository.SaleRepository,
	clinicRepo repository.ClinicRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:        saleRepo,
		clinicRepo:      clinicRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

// BuildReceipt composes a receipt for a completed sale. The receipt keeps
// the appointment fee line even when it was settled elsewhere, flagged so
// the client can render it as already paid.
func (s *ReceiptService) BuildReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		InvoiceNo:          sale.InvoiceNo,
		Date:               sale.SaleDate.Format("2006-01-02"),
		Patient:            sale.PatientName,
		PaymentMethod:      sale.PaymentMethod.String(),
		AppointmentFeePaid: sale.FeeAlreadyPaid,
		SubTotal:           float64(sale.SubTotal) / 100,
		RoundingAdjustment: float64(sale.RoundingAdjustment) / 100,
		Total:              float64(sale.Total) / 100,
		Paid:               float64(sale.Total-sale.Due) / 100,
		Due:                float64(sale.Due) / 100,
	}

	clinic, err := s.clinicRepo.GetByID(ctx, sale.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic != nil {
		receipt.Header = entity.ReceiptHeader{
			ClinicName: clinic.Name,
			Address:    clinic.Settings.Address,
			Phone:      clinic.Settings.Phone,
		}
	}

	cashier, err := s.userRepo.GetByID(ctx, sale.UserID)
	if err == nil && cashier != nil {
		receipt.Cashier = cashier.FirstName + " " + cashier.LastName
	}

	if sale.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *sale.AppointmentID)
		if err == nil && appointment != nil {
			receipt.SessionID = appointment.SessionID
			receipt.AppointmentNo = appointment.AppointmentNo
		}
	}

	receipt.Items = make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Kind:      item.Kind.String(),
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}

	return receipt, nil
}

// BuildReceiptByInvoiceNo composes a receipt looked up by invoice number
func (s *ReceiptService) BuildReceiptByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return s.BuildReceipt(ctx, sale.ID)
}
