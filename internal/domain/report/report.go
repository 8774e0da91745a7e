// Package report filters and aggregates fetched appointment collections in
// memory. Collections are single-clinic scale (tens to low hundreds of
// rows), so no pagination or streaming is attempted.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/clinicore/clinicore-api/internal/domain/enum"
)

// Row is one appointment viewed by the report aggregator.
// Amounts are in cents.
type Row struct {
	ID             string
	PatientName    string
	PatientContact string
	DoctorID       string
	DoctorName     string
	Date           *time.Time
	StartTime      string
	Status         enum.AppointmentStatus
	TotalCharge    int64
	ManualAmount   int64
	DoctorFee      int64
	Arrived        bool
	Paid           bool
	Refunded       bool
	SessionID      string
	AppointmentNo  int
}

// Revenue returns the amount this row contributes to revenue totals:
// the manual appointment amount when set and positive, otherwise the total
// charge. Refunded rows contribute nothing.
func (r Row) Revenue() int64 {
	if r.Refunded {
		return 0
	}
	if r.ManualAmount > 0 {
		return r.ManualAmount
	}
	return r.TotalCharge
}

// RangePreset selects a date range for filtering.
type RangePreset string

const (
	RangeThisMonth  RangePreset = "this-month"
	RangeThisYear   RangePreset = "this-year"
	RangeLast30Days RangePreset = "last-30-days"
	RangeCustom     RangePreset = "custom"
	RangeAll        RangePreset = "all"
)

// Filter holds the report filter parameters. Filters apply in order:
// date range, doctor, status, free-text query.
type Filter struct {
	Preset   RangePreset
	From     *time.Time // used when Preset is RangeCustom
	To       *time.Time
	DoctorID string // empty or "all" matches every doctor
	Status   *enum.AppointmentStatus
	Query    string
}

// Bounds resolves the preset into an inclusive [from, to] day range.
// A nil bound means unbounded on that side.
func (f Filter) Bounds(now time.Time) (from, to *time.Time) {
	switch f.Preset {
	case RangeThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &start, &end
	case RangeThisYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return &start, &end
	case RangeLast30Days:
		start := now.AddDate(0, 0, -30)
		return &start, &now
	case RangeCustom:
		return f.From, f.To
	}
	return nil, nil
}

// Apply filters rows by date range, doctor, status and free-text query.
// Rows without a date are excluded by any bounded date range.
func Apply(rows []Row, f Filter, now time.Time) []Row {
	from, to := f.Bounds(now)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if from != nil || to != nil {
			if r.Date == nil {
				continue
			}
			if from != nil && r.Date.Before(*from) {
				continue
			}
			if to != nil && r.Date.After(*to) {
				continue
			}
		}

		if f.DoctorID != "" && f.DoctorID != "all" && r.DoctorID != f.DoctorID {
			continue
		}

		if f.Status != nil && r.Status != *f.Status {
			continue
		}

		if query != "" && !matchesQuery(r, query) {
			continue
		}

		out = append(out, r)
	}
	return out
}

func matchesQuery(r Row, query string) bool {
	return strings.Contains(strings.ToLower(r.PatientName), query) ||
		strings.Contains(strings.ToLower(r.PatientContact), query) ||
		strings.Contains(strings.ToLower(r.DoctorName), query)
}

// Summary holds the aggregate statistics for a filtered collection.
// Amounts are in cents.
type Summary struct {
	TotalAppointments int                            `json:"total_appointments"`
	ByStatus          map[enum.AppointmentStatus]int `json:"-"`
	Scheduled         int                            `json:"scheduled"`
	Completed         int                            `json:"completed"`
	Cancelled         int                            `json:"cancelled"`
	NoShow            int                            `json:"no_show"`
	UniquePatients    int                            `json:"unique_patients"`
	TotalRevenue      int64                          `json:"total_revenue"`
	DoctorFees        int64                          `json:"doctor_fees"`
	CompletionRate    float64                        `json:"completion_rate"`
}

// Summarize computes the summary statistics over filtered rows. Unique
// patients are counted by contact number; rows without a contact count
// individually. Doctor fees only accrue for arrived patients.
func Summarize(rows []Row) Summary {
	s := Summary{ByStatus: make(map[enum.AppointmentStatus]int)}
	contacts := make(map[string]struct{})

	for _, r := range rows {
		s.TotalAppointments++
		s.ByStatus[r.Status]++

		if r.PatientContact != "" {
			contacts[r.PatientContact] = struct{}{}
		} else {
			s.UniquePatients++
		}

		s.TotalRevenue += r.Revenue()
		if r.Arrived {
			s.DoctorFees += r.DoctorFee
		}
	}

	s.UniquePatients += len(contacts)
	s.Scheduled = s.ByStatus[enum.AppointmentStatusScheduled]
	s.Completed = s.ByStatus[enum.AppointmentStatusCompleted]
	s.Cancelled = s.ByStatus[enum.AppointmentStatusCancelled]
	s.NoShow = s.ByStatus[enum.AppointmentStatusNoShow]

	if s.TotalAppointments > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.TotalAppointments) * 100
	}
	return s
}

// DoctorGroup is the per-doctor revenue grouping used for charting.
type DoctorGroup struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Count      int    `json:"count"`
	Revenue    int64  `json:"revenue"`
}

// GroupByDoctor groups rows by doctor, sorted by revenue descending.
func GroupByDoctor(rows []Row) []DoctorGroup {
	byDoctor := make(map[string]*DoctorGroup)
	order := make([]string, 0)

	for _, r := range rows {
		g, ok := byDoctor[r.DoctorID]
		if !ok {
			g = &DoctorGroup{DoctorID: r.DoctorID, DoctorName: r.DoctorName}
			byDoctor[r.DoctorID] = g
			order = append(order, r.DoctorID)
		}
		g.Count++
		g.Revenue += r.Revenue()
	}

	groups := make([]DoctorGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byDoctor[id])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Revenue > groups[j].Revenue
	})
	return groups
}

// MonthGroup is the per-month grouping used for charting.
type MonthGroup struct {
	Month   string `json:"month"` // formatted as "2006-01"
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

// GroupByMonth groups rows by calendar month in chronological order.
// Rows without a date are skipped; month grouping is chronological, not a
// place for sentinels.
func GroupByMonth(rows []Row) []MonthGroup {
	byMonth := make(map[string]*MonthGroup)

	for _, r := range rows {
		if r.Date == nil {
			continue
		}
		month := r.Date.Format("2006-01")
		g, ok := byMonth[month]
		if !ok {
			g = &MonthGroup{Month: month}
			byMonth[month] = g
		}
		g.Count++
		g.Revenue += r.Revenue()
	}

	groups := make([]MonthGroup, 0, len(byMonth))
	for _, g := range byMonth {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Month < groups[j].Month
	})
	return groups
}

// SortChronological orders rows by date then start time, keeping rows
// without a date last.
func SortChronological(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Date != nil && b.Date != nil:
			if a.Date.Equal(*b.Date) {
				return a.StartTime < b.StartTime
			}
			return a.Date.Before(*b.Date)
		case a.Date != nil:
			return true
		default:
			return false
		}
	})
}
