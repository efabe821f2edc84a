package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/dashboard"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/repository/memory"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
	currencysvc "github.com/sdgtech/payroll-backend-go/internal/service/currency"
	payrollsvc "github.com/sdgtech/payroll-backend-go/internal/service/payroll"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	dashboard dashboard.DashboardService
	payroll   payroll.PayrollService
	workbook  *workbook.Workbook
}

func setup(t *testing.T, employees ...employee.Employee) fixture {
	t.Helper()
	wb := workbook.New(memory.NewStore(), payroll.Settings{DefaultExchangeRate: dec("4.45")})
	err := wb.WithSession(context.Background(), func(s *workbook.Session) error {
		for _, e := range employees {
			if err := s.Employees().Create(e); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	return fixture{
		dashboard: NewDashboardService(wb, currencysvc.NewConverter(currency.MYR)),
		payroll:   payrollsvc.NewPayrollService(wb),
		workbook:  wb,
	}
}

func emp(name string, code currency.Code, salary string, status employee.Status) employee.Employee {
	return employee.Employee{Name: name, Currency: code, BasicSalary: dec(salary), Status: status}
}

func TestMonthlyTotal_ConvertsForeignCurrency(t *testing.T) {
	ctx := context.Background()
	f := setup(t, emp("E002", currency.USD, "1000", employee.StatusActive))

	_, err := f.payroll.Generate(ctx, payroll.GeneratePayrollRequest{Month: "March", Year: 2025})
	require.NoError(t, err)

	all, err := f.dashboard.MonthlyTotal(ctx, time.March, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "4450.00", all.Total.StringFixed(2))
	assert.Equal(t, "MYR", all.Currency)

	paid, err := f.dashboard.MonthlyTotal(ctx, time.March, 2025, true)
	require.NoError(t, err)
	assert.True(t, paid.Total.IsZero())

	_, err = f.payroll.Toggle(ctx, "E002_March_2025")
	require.NoError(t, err)

	paid, err = f.dashboard.MonthlyTotal(ctx, time.March, 2025, true)
	require.NoError(t, err)
	assert.Equal(t, "4450.00", paid.Total.StringFixed(2))
}

func TestMonthlyTotal_YearComesFromPaymentDate(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		emp("E001", currency.MYR, "3000", employee.StatusActive),
		emp("E004", currency.MYR, "2000", employee.StatusActive),
	)

	// December 2024 pay settled in January 2025.
	_, err := f.payroll.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E001",
		Month:       "December",
		Year:        2024,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("3000")}},
		PaymentDate: "2025-01-03",
	})
	require.NoError(t, err)
	_, err = f.payroll.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E004",
		Month:       "December",
		Year:        2024,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("2000")}},
		PaymentDate: "2024-12-31",
	})
	require.NoError(t, err)

	got, err := f.dashboard.MonthlyTotal(ctx, time.December, 2024, false)
	require.NoError(t, err)
	assert.Equal(t, "2000.00", got.Total.StringFixed(2))

	got, err = f.dashboard.MonthlyTotal(ctx, time.December, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", got.Total.StringFixed(2))
}

func TestMonthlyTotal_SkipsUnconvertibleRecords(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		emp("E001", currency.MYR, "3000", employee.StatusActive),
		emp("E005", "SGD", "1000", employee.StatusActive),
	)

	_, err := f.payroll.Generate(ctx, payroll.GeneratePayrollRequest{Month: "June", Year: 2025})
	require.NoError(t, err)

	got, err := f.dashboard.MonthlyTotal(ctx, time.June, 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", got.Total.StringFixed(2))
}

func TestYearSeries(t *testing.T) {
	ctx := context.Background()
	f := setup(t, emp("E001", currency.MYR, "3000", employee.StatusActive))

	for _, m := range []string{"January", "February"} {
		_, err := f.payroll.Generate(ctx, payroll.GeneratePayrollRequest{Month: m, Year: 2025})
		require.NoError(t, err)
	}
	_, err := f.payroll.Toggle(ctx, "E001_February_2025")
	require.NoError(t, err)

	series, err := f.dashboard.YearSeries(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, series.Months, 12)
	assert.Equal(t, "January", series.Months[0].Month)
	assert.True(t, series.Months[0].Total.IsZero())
	assert.Equal(t, "February", series.Months[1].Month)
	assert.Equal(t, "3000.00", series.Months[1].Total.StringFixed(2))
	assert.Equal(t, "December", series.Months[11].Month)
}

func TestHeadcountSummary(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		emp("E001", currency.MYR, "3000", employee.StatusActive),
		emp("E002", currency.USD, "1000", employee.StatusActive),
		emp("E003", currency.MYR, "2500", employee.StatusInactive),
	)

	_, err := f.payroll.Generate(ctx, payroll.GeneratePayrollRequest{Month: "May", Year: 2025})
	require.NoError(t, err)
	_, err = f.payroll.Toggle(ctx, "E001_May_2025")
	require.NoError(t, err)

	got, err := f.dashboard.HeadcountSummary(ctx, time.May, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PaidCount)
	assert.Equal(t, 2, got.ActiveCount)

	got, err = f.dashboard.HeadcountSummary(ctx, time.June, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PaidCount)
	assert.Equal(t, 2, got.ActiveCount)
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		emp("E001", currency.MYR, "3000", employee.StatusActive),
		emp("E002", currency.USD, "1000", employee.StatusActive),
	)

	_, err := f.payroll.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	require.NoError(t, err)
	_, err = f.payroll.Toggle(ctx, "E001_January_2025")
	require.NoError(t, err)

	got, err := f.dashboard.GetDashboard(ctx, time.January, 2025)
	require.NoError(t, err)
	assert.Equal(t, "January 2025", got.Period)
	assert.Equal(t, "3000.00", got.PaidTotal.StringFixed(2))
	assert.Equal(t, "7450.00", got.PayrollTotal.StringFixed(2))
	assert.Equal(t, 1, got.Headcount.PaidCount)
	assert.Equal(t, 2, got.Headcount.ActiveCount)
	assert.Equal(t, "3000.00", got.YearSeries.Months[0].Total.StringFixed(2))
}

func TestInvalidPeriod(t *testing.T) {
	f := setup(t)

	_, err := f.dashboard.MonthlyTotal(context.Background(), 13, 2025, false)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
	_, err = f.dashboard.YearSeries(context.Background(), 0)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
