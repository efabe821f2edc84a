package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
)

// PayrollJobs keeps the current period's records generated.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("generate_current_period", interval, j.GenerateCurrentPeriod)
}

// GenerateCurrentPeriod creates missing records for the current month.
// Generation skips employees that already have one, so repeated runs are safe.
func (j *PayrollJobs) GenerateCurrentPeriod(ctx context.Context) error {
	now := j.now()
	req := payroll.GeneratePayrollRequest{
		Month: now.Month().String(),
		Year:  now.Year(),
	}

	result, err := j.payrollService.Generate(ctx, req)
	if err != nil {
		return err
	}
	if result.Created > 0 {
		slog.Info("cron: payroll generated", "period", result.Period, "created", result.Created)
	}
	return nil
}
