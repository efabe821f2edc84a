package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
	"github.com/sdgtech/payroll-backend-go/internal/repository/memory"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(t *testing.T, employees ...employee.Employee) (payroll.PayrollService, *workbook.Workbook) {
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
	return NewPayrollService(wb), wb
}

func activeEmployee(name string, code currency.Code, salary string) employee.Employee {
	return employee.Employee{
		Name:        name,
		Currency:    code,
		BasicSalary: dec(salary),
		Status:      employee.StatusActive,
	}
}

func countRecords(t *testing.T, svc payroll.PayrollService) int {
	t.Helper()
	all, err := svc.ListRecords(context.Background(), payroll.PayrollFilter{})
	require.NoError(t, err)
	return len(all)
}

func TestGenerate_SeedsFromEmployeeAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E001", currency.MYR, "3000"))

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, "January 2025", resp.Period)

	rec, err := svc.GetByID(ctx, "E001_January_2025")
	require.NoError(t, err)
	require.Len(t, rec.Earnings, 1)
	assert.Equal(t, "Basic Salary", rec.Earnings[0].Description)
	assert.True(t, rec.Earnings[0].Amount.Equal(dec("3000")))
	require.Len(t, rec.Deductions, 1)
	assert.Equal(t, "Unpaid Leave", rec.Deductions[0].Description)
	assert.True(t, rec.Deductions[0].Amount.IsZero())
	assert.True(t, rec.NetSalary.Equal(dec("3000")))
	assert.Equal(t, "Unpaid", rec.Status)
	assert.Equal(t, "MYR", rec.Currency)
	assert.Equal(t, "2025-01-31", rec.PaymentDate)

	resp, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, countRecords(t, svc))
}

func TestGenerate_ForeignCurrencyUsesDefaultRate(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E002", currency.USD, "1000"))

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "3", Year: 2025})
	require.NoError(t, err)

	rec, err := svc.Lookup(ctx, payroll.RecordKey{EmployeeID: "E002", Period: payroll.NewPeriod(time.March, 2025)})
	require.NoError(t, err)
	assert.True(t, rec.ExchangeRate.Equal(dec("4.45")))
	assert.Equal(t, "USD", rec.Currency)
}

func TestGenerate_CarriesForwardChronologicallyLastRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E001", currency.USD, "3000"))

	// December 2024 sorts after January 2025 as a string but is older.
	_, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:   "E001",
		Month:        "January",
		Year:         2025,
		Earnings:     []payroll.LineItemRequest{{Description: "Basic", Amount: dec("3200")}},
		Deductions:   []payroll.LineItemRequest{{Description: "EPF", Amount: dec("352")}},
		PaymentDate:  "2025-01-28",
		ExchangeRate: ptr(dec("4.30")),
	})
	require.NoError(t, err)
	_, err = svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E001",
		Month:       "December",
		Year:        2024,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("3000")}},
		PaymentDate: "2024-12-28",
	})
	require.NoError(t, err)

	last, err := svc.LastRecord(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, "E001_January_2025", last.ID)

	_, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "February", Year: 2025})
	require.NoError(t, err)

	feb, err := svc.GetByID(ctx, "E001_February_2025")
	require.NoError(t, err)
	require.Len(t, feb.Earnings, 1)
	assert.Equal(t, "Basic", feb.Earnings[0].Description)
	assert.True(t, feb.Earnings[0].Amount.Equal(dec("3200")))
	require.Len(t, feb.Deductions, 1)
	assert.Equal(t, "EPF", feb.Deductions[0].Description)
	assert.True(t, feb.NetSalary.Equal(dec("2848")))
	assert.True(t, feb.ExchangeRate.Equal(dec("4.30")))
	assert.Equal(t, "2025-02-28", feb.PaymentDate)
	assert.Equal(t, "Unpaid", feb.Status)
}

func TestGenerate_SkipsInactiveButKeepsHistory(t *testing.T) {
	ctx := context.Background()
	svc, wb := setup(t,
		activeEmployee("E001", currency.MYR, "3000"),
		activeEmployee("E003", currency.MYR, "2500"),
	)

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "February", Year: 2025})
	require.NoError(t, err)
	before, err := svc.GetByID(ctx, "E003_February_2025")
	require.NoError(t, err)

	err = wb.WithSession(ctx, func(s *workbook.Session) error {
		e, err := s.Employees().GetByName("E003")
		if err != nil {
			return err
		}
		e.Status = employee.StatusInactive
		return s.Employees().Update(e)
	})
	require.NoError(t, err)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "February", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)

	after, err := svc.GetByID(ctx, "E003_February_2025")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, before.NetSalary.Equal(after.NetSalary))
	assert.Equal(t, before.Status, after.Status)

	resp, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "March", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	_, err = svc.GetByID(ctx, "E003_March_2025")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	resp, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "March", Year: 2025, IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "Smarch", Year: 2025})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestSave_RecomputesNetAndResetsStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E001", currency.MYR, "3000"))

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, payroll.UpdateStatusRequest{RecordID: "E001_January_2025", Status: "Paid"})
	require.NoError(t, err)

	saved, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID: "E001",
		Month:      "January",
		Year:       2025,
		Earnings: []payroll.LineItemRequest{
			{Description: "Basic", Amount: dec("3000")},
			{Description: "Bonus", Amount: dec("500")},
		},
		Deductions:  []payroll.LineItemRequest{{Description: "Tax", Amount: dec("200")}},
		Remarks:     "with bonus",
		PaymentDate: "2025-01-25",
	})
	require.NoError(t, err)
	assert.True(t, saved.NetSalary.Equal(dec("3300")))
	assert.True(t, saved.TotalEarnings.Equal(dec("3500")))
	assert.True(t, saved.TotalDeductions.Equal(dec("200")))
	assert.Equal(t, "Unpaid", saved.Status)

	stored, err := svc.GetByID(ctx, "E001_January_2025")
	require.NoError(t, err)
	assert.True(t, stored.NetSalary.Equal(dec("3300")))
	assert.Len(t, stored.Earnings, 2)
	assert.Equal(t, "with bonus", stored.Remarks)
	assert.Equal(t, "2025-01-25", stored.PaymentDate)
	assert.Equal(t, "Unpaid", stored.Status)
	assert.Equal(t, 1, countRecords(t, svc))
}

func TestSave_CurrencyFrozenOnceCreated(t *testing.T) {
	ctx := context.Background()
	svc, wb := setup(t, activeEmployee("E002", currency.USD, "1000"))

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "April", Year: 2025})
	require.NoError(t, err)

	err = wb.WithSession(ctx, func(s *workbook.Session) error {
		e, _ := s.Employees().GetByName("E002")
		e.Currency = currency.MYR
		return s.Employees().Update(e)
	})
	require.NoError(t, err)

	saved, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E002",
		Month:       "April",
		Year:        2025,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("1100")}},
		PaymentDate: "2025-04-30",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", saved.Currency)

	fresh, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E002",
		Month:       "May",
		Year:        2025,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("1100")}},
		PaymentDate: "2025-05-30",
	})
	require.NoError(t, err)
	assert.Equal(t, "MYR", fresh.Currency)
}

func TestSave_EditsRecordOfRemovedEmployee(t *testing.T) {
	ctx := context.Background()
	svc, wb := setup(t, activeEmployee("E002", currency.USD, "1000"))

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "April", Year: 2025})
	require.NoError(t, err)

	err = wb.WithSession(ctx, func(s *workbook.Session) error {
		s.Employees().Delete("E002")
		return nil
	})
	require.NoError(t, err)

	saved, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E002",
		Month:       "April",
		Year:        2025,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("1200")}},
		PaymentDate: "2025-04-30",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", saved.Currency)
	assert.True(t, dec("1200").Equal(saved.NetSalary))

	_, err = svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E002",
		Month:       "May",
		Year:        2025,
		PaymentDate: "2025-05-31",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSave_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E001", currency.MYR, "3000"))

	_, err := svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E001",
		Month:       "January",
		Year:        2025,
		Earnings:    []payroll.LineItemRequest{{Description: "Basic", Amount: dec("-1")}},
		PaymentDate: "2025-01-31",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "earnings[0].amount", verrs[0].Field)

	_, err = svc.Save(ctx, payroll.SavePayrollRecordRequest{
		EmployeeID:  "E999",
		Month:       "January",
		Year:        2025,
		PaymentDate: "2025-01-31",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, 0, countRecords(t, svc))
}

func TestSetStatus_IsIdempotentAndToggleFlips(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t, activeEmployee("E001", currency.MYR, "3000"))
	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	require.NoError(t, err)

	id := "E001_January_2025"
	for range 2 {
		rec, err := svc.SetStatus(ctx, payroll.UpdateStatusRequest{RecordID: id, Status: "Paid"})
		require.NoError(t, err)
		assert.Equal(t, "Paid", rec.Status)
	}

	rec, err := svc.Toggle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Unpaid", rec.Status)
	rec, err = svc.Toggle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Paid", rec.Status)

	_, err = svc.Toggle(ctx, "E001_February_2025")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	_, err = svc.Toggle(ctx, "nonsense")
	assert.ErrorIs(t, err, payroll.ErrInvalidRecordID)
	_, err = svc.SetStatus(ctx, payroll.UpdateStatusRequest{RecordID: id, Status: "Processing"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLastRecord_NotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.LastRecord(context.Background(), "E001")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.DefaultExchangeRate.Equal(dec("4.45")))

	got, err = svc.UpdateSettings(ctx, payroll.UpdateSettingsRequest{DefaultExchangeRate: ptr(dec("4.60"))})
	require.NoError(t, err)
	assert.True(t, got.DefaultExchangeRate.Equal(dec("4.6")))

	_, err = svc.UpdateSettings(ctx, payroll.UpdateSettingsRequest{DefaultExchangeRate: ptr(decimal.Zero)})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	got, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.DefaultExchangeRate.Equal(dec("4.6")))
}

// unreadableStore fails every read.
type unreadableStore struct{ docstore.Store }

func (unreadableStore) Read(_ context.Context, relation string) (docstore.Table, error) {
	return docstore.Table{}, docstore.Unavailable("read", relation, errors.New("quota exceeded"))
}

func TestStoreOutage(t *testing.T) {
	ctx := context.Background()
	wb := workbook.New(unreadableStore{memory.NewStore()}, payroll.Settings{DefaultExchangeRate: dec("4.45")})
	svc := NewPayrollService(wb)

	records, err := svc.ListRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "January", Year: 2025})
	assert.ErrorIs(t, err, docstore.ErrStoreUnavailable)
}

func ptr[T any](v T) *T {
	return &v
}
