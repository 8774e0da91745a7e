package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProcedureResult represents a procedure's billing performance
type TopProcedureResult struct {
	ProcedureID   uuid.UUID
	ProcedureName string
	TimesBilled   int
	Revenue       int64
}

// DoctorRevenueResult represents revenue aggregated per doctor
type DoctorRevenueResult struct {
	DoctorID         uuid.UUID
	DoctorName       string
	AppointmentCount int
	Revenue          int64
	Fees             int64
}

// DailyRevenueResult represents revenue for a single day
type DailyRevenueResult struct {
	Date    time.Time
	Revenue int64
	Count   int
}

// StatusCountResult represents appointment counts per status
type StatusCountResult struct {
	Status string
	Count  int
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopProcedures returns the most billed procedures by revenue
	GetTopProcedures(ctx context.Context, limit int) ([]TopProcedureResult, error)

	// GetRevenueByDoctor returns revenue and fee totals per doctor
	GetRevenueByDoctor(ctx context.Context) ([]DoctorRevenueResult, error)

	// GetDailyRevenue returns settled sale revenue per day for the last N days
	GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenueResult, error)

	// GetAppointmentStatusCounts returns today's appointment counts per status
	GetAppointmentStatusCounts(ctx context.Context, day time.Time) ([]StatusCountResult, error)

	// GetTotalRevenue returns total revenue from settled sales
	GetTotalRevenue(ctx context.Context) (int64, error)

	// GetMonthlyRevenue returns revenue for the current month
	GetMonthlyRevenue(ctx context.Context) (int64, error)

	// GetOutstandingDue returns the sum of unpaid balances on partial and credit sales
	GetOutstandingDue(ctx context.Context) (int64, error)
}
