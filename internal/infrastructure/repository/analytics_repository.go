package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	domainRepo "github.com/clinicore/clinicore-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProcedures(ctx context.Context, limit int) ([]domainRepo.TopProcedureResult, error) {
	var results []domainRepo.TopProcedureResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as procedure_id,
			p.name as procedure_name,
			COUNT(ap.id) as times_billed,
			COALESCE(SUM(ap.charge), 0) as revenue
		FROM appointment_procedures ap
		JOIN procedures p ON p.id = ap.procedure_id
		JOIN appointments a ON a.id = ap.appointment_id
		WHERE a.status = 1 AND a.deleted_at IS NULL
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetRevenueByDoctor(ctx context.Context) ([]domainRepo.DoctorRevenueResult, error) {
	var results []domainRepo.DoctorRevenueResult

	// Manual amounts override the computed charge when set; refunded
	// appointments contribute nothing.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id as doctor_id,
			d.name as doctor_name,
			COUNT(a.id) as appointment_count,
			COALESCE(SUM(
				CASE WHEN a.payment_refunded THEN 0
				     WHEN a.manual_amount > 0 THEN a.manual_amount
				     ELSE a.total_charge END), 0) as revenue,
			COALESCE(SUM(CASE WHEN a.arrived THEN d.channeling_fee ELSE 0 END), 0) as fees
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.deleted_at IS NULL
		GROUP BY d.id, d.name
		ORDER BY revenue DESC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenueResult, error) {
	results := make([]domainRepo.DailyRevenueResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get revenue for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var revenue sql.NullInt64
		var count sql.NullInt64
		row := r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(total), 0), COUNT(id)
			FROM sales
			WHERE deleted_at IS NULL
			AND sale_date >= ? AND sale_date < ?
		`, startOfDay, endOfDay).Row()
		if err := row.Scan(&revenue, &count); err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailyRevenueResult{
			Date:    startOfDay,
			Revenue: revenue.Int64,
			Count:   int(count.Int64),
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetAppointmentStatusCounts(ctx context.Context, day time.Time) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			CASE status
				WHEN 0 THEN 'scheduled'
				WHEN 1 THEN 'completed'
				WHEN 2 THEN 'cancelled'
				WHEN 3 THEN 'no_show'
				ELSE 'unknown' END as status,
			COUNT(id) as count
		FROM appointments
		WHERE date >= ? AND date < ? AND deleted_at IS NULL
		GROUP BY status
	`, dayStart, dayEnd).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE deleted_at IS NULL
	`).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE deleted_at IS NULL AND sale_date >= ?
	`, startOfMonth).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetOutstandingDue(ctx context.Context) (int64, error) {
	var due int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(due), 0)
		FROM sales
		WHERE deleted_at IS NULL AND due > 0
	`).Scan(&due).Error

	return due, err
}
