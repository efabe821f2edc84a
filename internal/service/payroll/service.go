package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

const (
	defaultEarningDescription   = "Basic Salary"
	defaultDeductionDescription = "Unpaid Leave"
)

type PayrollServiceImpl struct {
	workbook *workbook.Workbook
}

func NewPayrollService(wb *workbook.Workbook) payroll.PayrollService {
	return &PayrollServiceImpl{
		workbook: wb,
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	var settings payroll.Settings
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		settings = sess.Payroll().GetSettings()
		return nil
	})
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.SettingsResponse{DefaultExchangeRate: settings.DefaultExchangeRate}, nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	var settings payroll.Settings
	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		settings = repo.GetSettings()
		if req.DefaultExchangeRate != nil {
			settings.DefaultExchangeRate = *req.DefaultExchangeRate
			repo.PutSettings(settings)
		}
		return nil
	})
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	return payroll.SettingsResponse{DefaultExchangeRate: settings.DefaultExchangeRate}, nil
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	period := req.Period()

	created := 0
	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		settings := repo.GetSettings()

		for _, emp := range sess.Employees().All() {
			if emp.Status != employee.StatusActive && !req.IncludeInactive {
				continue
			}

			key := payroll.RecordKey{EmployeeID: emp.Name, Period: period}

			// Skip employees already covered for the period
			_, err := repo.GetByKey(key)
			if err == nil {
				continue
			}
			if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
				return fmt.Errorf("failed to check existing payroll record: %w", err)
			}

			prior, hasPrior := lastRecord(repo, emp.Name)
			record := newRecord(emp, key, prior, hasPrior, settings)
			if err := repo.Create(record); err != nil {
				return fmt.Errorf("failed to create payroll record %s: %w", key, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	slog.Info("payroll generated", "period", period.String(), "created", created)
	return payroll.GeneratePayrollResponse{Period: period.String(), Created: created}, nil
}

// newRecord builds an Unpaid record carrying forward the line items and rate of
// prior, or seeded from the employee when there is no history.
func newRecord(emp employee.Employee, key payroll.RecordKey, prior payroll.PayrollRecord, hasPrior bool, settings payroll.Settings) payroll.PayrollRecord {
	record := payroll.PayrollRecord{
		Key:          key,
		Currency:     emp.Currency,
		PaymentDate:  key.Period.LastDay(),
		Status:       payroll.PayrollStatusUnpaid,
		ExchangeRate: settings.DefaultExchangeRate,
	}

	if hasPrior {
		record.Earnings = prior.Earnings
		record.Deductions = prior.Deductions
		if !prior.ExchangeRate.IsZero() {
			record.ExchangeRate = prior.ExchangeRate
		}
	} else {
		record.Earnings = []payroll.LineItem{{Description: defaultEarningDescription, Amount: emp.BasicSalary}}
		record.Deductions = []payroll.LineItem{{Description: defaultDeductionDescription, Amount: decimal.Zero}}
	}

	record.Recalculate()
	return record
}

// lastRecord returns the chronologically latest record of the employee.
func lastRecord(repo payroll.PayrollRepository, employeeID string) (payroll.PayrollRecord, bool) {
	records := repo.List(payroll.RecordFilter{EmployeeID: employeeID})
	if len(records) == 0 {
		return payroll.PayrollRecord{}, false
	}
	return records[len(records)-1], true
}

func (s *PayrollServiceImpl) Lookup(ctx context.Context, key payroll.RecordKey) (payroll.PayrollRecordResponse, error) {
	var record payroll.PayrollRecord
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		var err error
		record, err = sess.Payroll().GetByKey(key)
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	key, err := payroll.ParseRecordKey(id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return s.Lookup(ctx, key)
}

func (s *PayrollServiceImpl) LastRecord(ctx context.Context, employeeID string) (payroll.PayrollRecordResponse, error) {
	var (
		record payroll.PayrollRecord
		found  bool
	)
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		record, found = lastRecord(sess.Payroll(), employeeID)
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !found {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var records []payroll.PayrollRecord
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		records = sess.Payroll().List(filter.RecordFilter())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payroll.NewPayrollRecordResponses(records), nil
}

func (s *PayrollServiceImpl) Save(ctx context.Context, req payroll.SavePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	key := req.Key()

	var record payroll.PayrollRecord
	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		record = payroll.PayrollRecord{
			Key:         key,
			Earnings:    payroll.ToLineItems(req.Earnings),
			Deductions:  payroll.ToLineItems(req.Deductions),
			PaymentDate: req.ParsedPaymentDate(),
			Remarks:     req.Remarks,
			Status:      payroll.PayrollStatusUnpaid,
		}
		if req.ExchangeRate != nil {
			record.ExchangeRate = *req.ExchangeRate
		}

		// Currency is frozen once the record exists
		existing, err := repo.GetByKey(key)
		switch {
		case err == nil:
			record.Currency = existing.Currency
		case errors.Is(err, payroll.ErrPayrollRecordNotFound):
			emp, err := sess.Employees().GetByName(key.EmployeeID)
			if err != nil {
				return err
			}
			record.Currency = emp.Currency
		default:
			return err
		}

		record.Recalculate()
		repo.Put(record)
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll record saved", "id", record.ID(), "net_salary", record.NetSalary.String())
	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) SetStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	status := payroll.PayrollStatus(req.Status)

	return s.transition(ctx, req.RecordID, func(payroll.PayrollStatus) payroll.PayrollStatus {
		return status
	})
}

func (s *PayrollServiceImpl) Toggle(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.PayrollStatus.Toggle)
}

// transition applies next to the record's status, writing only on change.
func (s *PayrollServiceImpl) transition(ctx context.Context, id string, next func(payroll.PayrollStatus) payroll.PayrollStatus) (payroll.PayrollRecordResponse, error) {
	key, err := payroll.ParseRecordKey(id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var record payroll.PayrollRecord
	err = s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		current, err := repo.GetByKey(key)
		if err != nil {
			return err
		}
		record = current

		status := next(record.Status)
		if status == record.Status {
			return nil
		}
		record.Status = status
		repo.Put(record)
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll status updated", "id", record.ID(), "status", record.Status)
	return payroll.NewPayrollRecordResponse(record), nil
}
