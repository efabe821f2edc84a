package cron

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/repository/memory"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
	payrollService "github.com/sdgtech/payroll-backend-go/internal/service/payroll"
)

func TestGenerateCurrentPeriod(t *testing.T) {
	ctx := context.Background()
	wb := workbook.New(memory.NewStore(), payroll.Settings{DefaultExchangeRate: decimal.RequireFromString("4.45")})
	require.NoError(t, wb.WithSession(ctx, func(s *workbook.Session) error {
		return s.Employees().Create(employee.Employee{
			Name:        "E001",
			Currency:    currency.MYR,
			BasicSalary: decimal.NewFromInt(3000),
			Status:      employee.StatusActive,
		})
	}))

	svc := payrollService.NewPayrollService(wb)
	jobs := NewPayrollJobs(svc)
	jobs.now = func() time.Time { return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC) }

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler, time.Hour)
	scheduler.RunOnce(ctx)
	scheduler.RunOnce(ctx)

	records, err := svc.ListRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E001_March_2025", records[0].ID)
}

func TestScheduler_StartStop(t *testing.T) {
	runs := make(chan struct{}, 4)

	scheduler := NewScheduler()
	scheduler.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs <- struct{}{}
		return nil
	})
	scheduler.Start(context.Background())

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	scheduler.Stop()
}
