package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the counts and daily totals shown on the
// home page.
type DashboardStats struct {
	TotalCustomers      int64
	TotalSuppliers      int64
	TotalMedicines      int64
	OutOfStockMedicines int64
	ExpiredMedicines    int64
	TotalInvoices       int64
	TodaySales          decimal.Decimal
	TodayPurchases      decimal.Decimal
}

// Dashboard computes the stats relative to now. "Today" is the calendar
// date of now in its own location. Invoice and purchase dates are stored
// as UTC midnight of their calendar date, so the window is that date in UTC.
func (s *Store) Dashboard(ctx context.Context, now time.Time) (DashboardStats, error) {
	var stats DashboardStats
	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalCustomers, `SELECT COUNT(*) FROM customers`, nil},
		{&stats.TotalSuppliers, `SELECT COUNT(*) FROM suppliers`, nil},
		{&stats.TotalMedicines, `SELECT COUNT(*) FROM medicines`, nil},
		{&stats.OutOfStockMedicines, `SELECT COUNT(*) FROM medicine_stocks WHERE quantity < 1`, nil},
		{&stats.ExpiredMedicines, `SELECT COUNT(*) FROM medicine_stocks WHERE expiration_date < ?`, []any{utc(now)}},
		{&stats.TotalInvoices, `SELECT COUNT(*) FROM invoices`, nil},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.query, c.args...)
		if err != nil {
			return DashboardStats{}, fmt.Errorf("dashboard count: %w", err)
		}
		*c.dest = n
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var err error
	stats.TodaySales, err = s.sum(ctx, `SELECT net_total FROM invoices WHERE invoice_date >= ? AND invoice_date < ?`, start, end)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard sales: %w", err)
	}
	stats.TodayPurchases, err = s.sum(ctx, `SELECT total_amount FROM purchases WHERE purchase_date >= ? AND purchase_date < ?`, start, end)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard purchases: %w", err)
	}
	return stats, nil
}

// sum adds a money column in Go so both drivers agree on precision.
func (s *Store) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var values []decimal.Decimal
	if err := s.db.SelectContext(ctx, &values, s.db.Rebind(query), args...); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total, nil
}
