package service

import (
	"context"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/entity"
	"github.com/clinicore/clinicore-api/internal/domain/repository"
)

// DashboardService provides the front-desk dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	inventoryRepo repository.InventoryRepository
	batchRepo     repository.BatchRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	inventoryRepo repository.InventoryRepository,
	batchRepo repository.BatchRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		inventoryRepo: inventoryRepo,
		batchRepo:     batchRepo,
	}
}

// DashboardStats represents dashboard statistics. Money values are decimal
// amounts, converted from cents at the edge.
type DashboardStats struct {
	TotalRevenue    float64 `json:"total_revenue"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	OutstandingDue  float64 `json:"outstanding_due"`
	LowStockCount   int64   `json:"low_stock_count"`
	ExpiringBatches int64   `json:"expiring_batches"`

	TodayByStatus map[string]int64                 `json:"today_by_status"`
	DailyRevenue  []DailyRevenuePoint              `json:"daily_revenue"`
	TopProcedures []repository.TopProcedureResult  `json:"top_procedures"`
	DoctorRevenue []repository.DoctorRevenueResult `json:"doctor_revenue"`
}

// DailyRevenuePoint is one day on the revenue chart
type DailyRevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

const (
	dailyRevenueDays  = 14
	topProcedureLimit = 5
	expiryWarningDays = 30
)

// GetDashboardStats returns dashboard statistics for the current clinic
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{TodayByStatus: make(map[string]int64)}

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = float64(totalRevenue) / 100

	monthlyRevenue, err := s.analyticsRepo.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = float64(monthlyRevenue) / 100

	outstandingDue, err := s.analyticsRepo.GetOutstandingDue(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutstandingDue = float64(outstandingDue) / 100

	statusCounts, err := s.analyticsRepo.GetAppointmentStatusCounts(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		stats.TodayByStatus[sc.Status] = int64(sc.Count)
	}

	daily, err := s.analyticsRepo.GetDailyRevenue(ctx, dailyRevenueDays)
	if err != nil {
		return nil, err
	}
	stats.DailyRevenue = make([]DailyRevenuePoint, 0, len(daily))
	for _, d := range daily {
		stats.DailyRevenue = append(stats.DailyRevenue, DailyRevenuePoint{
			Date:    d.Date.Format("Jan 02"),
			Revenue: float64(d.Revenue) / 100,
			Count:   d.Count,
		})
	}

	stats.TopProcedures, err = s.analyticsRepo.GetTopProcedures(ctx, topProcedureLimit)
	if err != nil {
		return nil, err
	}

	stats.DoctorRevenue, err = s.analyticsRepo.GetRevenueByDoctor(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.inventoryRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	cutoff := time.Now().AddDate(0, 0, expiryWarningDays)
	expiring, err := s.batchRepo.GetExpiring(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	stats.ExpiringBatches = int64(len(expiring))

	return stats, nil
}

// GetLowStockItems returns the items at or below their alert quantity
func (s *DashboardService) GetLowStockItems(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.GetLowStock(ctx)
}

// GetExpiringBatches returns batches expiring within the warning window
func (s *DashboardService) GetExpiringBatches(ctx context.Context) ([]entity.Batch, error) {
	return s.batchRepo.GetExpiring(ctx, time.Now().AddDate(0, 0, expiryWarningDays))
}
