package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sdgtech/payroll-backend-go/internal/domain/dashboard"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
	currencysvc "github.com/sdgtech/payroll-backend-go/internal/service/currency"
)

type DashboardServiceImpl struct {
	workbook  *workbook.Workbook
	converter *currencysvc.Converter
}

func NewDashboardService(wb *workbook.Workbook, converter *currencysvc.Converter) dashboard.DashboardService {
	return &DashboardServiceImpl{
		workbook:  wb,
		converter: converter,
	}
}

func (s *DashboardServiceImpl) MonthlyTotal(ctx context.Context, month time.Month, year int, onlyPaid bool) (dashboard.MonthlyTotalResponse, error) {
	if !payroll.NewPeriod(month, year).IsValid() {
		return dashboard.MonthlyTotalResponse{}, payroll.ErrInvalidPeriod
	}

	var total decimal.Decimal
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		total = s.monthlyTotal(repo.List(payroll.RecordFilter{}), repo.GetSettings(), month, year, onlyPaid)
		return nil
	})
	if err != nil {
		return dashboard.MonthlyTotalResponse{}, err
	}

	return dashboard.MonthlyTotalResponse{
		Month:    month.String(),
		Year:     year,
		OnlyPaid: onlyPaid,
		Currency: s.converter.Reporting().String(),
		Total:    total,
	}, nil
}

func (s *DashboardServiceImpl) YearSeries(ctx context.Context, year int) (dashboard.YearSeriesResponse, error) {
	if year <= 0 {
		return dashboard.YearSeriesResponse{}, payroll.ErrInvalidPeriod
	}

	var resp dashboard.YearSeriesResponse
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		resp = s.yearSeries(repo.List(payroll.RecordFilter{}), repo.GetSettings(), year)
		return nil
	})
	return resp, err
}

func (s *DashboardServiceImpl) HeadcountSummary(ctx context.Context, month time.Month, year int) (dashboard.HeadcountResponse, error) {
	period := payroll.NewPeriod(month, year)
	if !period.IsValid() {
		return dashboard.HeadcountResponse{}, payroll.ErrInvalidPeriod
	}

	var resp dashboard.HeadcountResponse
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		resp = headcount(sess.Payroll().List(payroll.RecordFilter{Period: &period}), sess.Employees().All(), period)
		return nil
	})
	return resp, err
}

// GetDashboard computes every widget from one snapshot.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month time.Month, year int) (dashboard.DashboardResponse, error) {
	period := payroll.NewPeriod(month, year)
	if !period.IsValid() {
		return dashboard.DashboardResponse{}, payroll.ErrInvalidPeriod
	}

	var (
		records   []payroll.PayrollRecord
		employees []employee.Employee
		settings  payroll.Settings
	)
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		records = sess.Payroll().List(payroll.RecordFilter{})
		employees = sess.Employees().All()
		settings = sess.Payroll().GetSettings()
		return nil
	})
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	var (
		paidTotal    decimal.Decimal
		payrollTotal decimal.Decimal
		counts       dashboard.HeadcountResponse
		series       dashboard.YearSeriesResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Paid total for the month
	g.Go(func() error {
		paidTotal = s.monthlyTotal(records, settings, month, year, true)
		return gCtx.Err()
	})

	// 2. Total payroll for the month, paid or not
	g.Go(func() error {
		payrollTotal = s.monthlyTotal(records, settings, month, year, false)
		return gCtx.Err()
	})

	// 3. Headcount
	g.Go(func() error {
		inPeriod := make([]payroll.PayrollRecord, 0, len(records))
		for _, r := range records {
			if r.Key.Period == period {
				inPeriod = append(inPeriod, r)
			}
		}
		counts = headcount(inPeriod, employees, period)
		return gCtx.Err()
	})

	// 4. Year series (bar chart)
	g.Go(func() error {
		series = s.yearSeries(records, settings, year)
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		Period:       period.String(),
		Currency:     s.converter.Reporting().String(),
		PaidTotal:    paidTotal,
		PayrollTotal: payrollTotal,
		Headcount:    counts,
		YearSeries:   series,
	}, nil
}

// monthlyTotal sums records of the given month whose payment date falls in
// year. The payment date, not the record period, decides the year; records
// without a payment date never count.
func (s *DashboardServiceImpl) monthlyTotal(records []payroll.PayrollRecord, settings payroll.Settings, month time.Month, year int, onlyPaid bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.Key.Period.Month != month {
			continue
		}
		if r.PaymentDate.IsZero() || r.PaymentDate.Year() != year {
			continue
		}
		if onlyPaid && r.Status != payroll.PayrollStatusPaid {
			continue
		}
		total = total.Add(s.converter.ToReportingCurrency(r, settings.DefaultExchangeRate))
	}
	return total.Round(2)
}

func (s *DashboardServiceImpl) yearSeries(records []payroll.PayrollRecord, settings payroll.Settings, year int) dashboard.YearSeriesResponse {
	months := make([]dashboard.MonthAmount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, dashboard.MonthAmount{
			Month: m.String(),
			Total: s.monthlyTotal(records, settings, m, year, true),
		})
	}
	return dashboard.YearSeriesResponse{
		Year:     year,
		Currency: s.converter.Reporting().String(),
		Months:   months,
	}
}

// headcount expects records already narrowed to the period.
func headcount(records []payroll.PayrollRecord, employees []employee.Employee, period payroll.Period) dashboard.HeadcountResponse {
	resp := dashboard.HeadcountResponse{Month: period.Label(), Year: period.Year}
	for _, r := range records {
		if r.Status == payroll.PayrollStatusPaid {
			resp.PaidCount++
		}
	}
	for _, e := range employees {
		if e.Status == employee.StatusActive {
			resp.ActiveCount++
		}
	}
	return resp
}
