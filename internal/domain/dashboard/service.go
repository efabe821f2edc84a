package dashboard

import (
	"context"
	"time"
)

// DashboardService folds payroll records into reporting-currency totals
type DashboardService interface {
	// MonthlyTotal sums records of the month whose payment date falls in year
	MonthlyTotal(ctx context.Context, month time.Month, year int, onlyPaid bool) (MonthlyTotalResponse, error)

	// YearSeries returns twelve paid-only monthly totals in calendar order
	YearSeries(ctx context.Context, year int) (YearSeriesResponse, error)

	// HeadcountSummary counts paid records in the period and active employees
	HeadcountSummary(ctx context.Context, month time.Month, year int) (HeadcountResponse, error)

	// GetDashboard combines the above for one period
	GetDashboard(ctx context.Context, month time.Month, year int) (DashboardResponse, error)
}
