package report

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/domain/report"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
	currencysvc "github.com/sdgtech/payroll-backend-go/internal/service/currency"
)

type ReportServiceImpl struct {
	workbook  *workbook.Workbook
	converter *currencysvc.Converter
}

func NewReportService(wb *workbook.Workbook, converter *currencysvc.Converter) report.ReportService {
	return &ReportServiceImpl{
		workbook:  wb,
		converter: converter,
	}
}

func (s *ReportServiceImpl) PayrollRegister(ctx context.Context, req report.PayrollRegisterRequest) (report.PayrollRegister, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollRegister{}, err
	}
	period := req.Period()

	filter := payroll.RecordFilter{Period: &period}
	if req.OnlyPaid {
		paid := payroll.PayrollStatusPaid
		filter.Status = &paid
	}

	register := report.PayrollRegister{
		Period:    period.String(),
		Reporting: s.converter.Reporting().String(),
		Rows:      []report.PayrollRegisterRow{},
	}
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		repo := sess.Payroll()
		settings := repo.GetSettings()
		for _, r := range repo.List(filter) {
			// Orphaned records keep an empty employee block.
			emp, _ := sess.Employees().GetByName(r.Key.EmployeeID)
			register.Rows = append(register.Rows, s.row(r, emp, settings))
		}
		return nil
	})
	if err != nil {
		return report.PayrollRegister{}, err
	}

	return register, nil
}

func (s *ReportServiceImpl) row(r payroll.PayrollRecord, emp employee.Employee, settings payroll.Settings) report.PayrollRegisterRow {
	row := report.PayrollRegisterRow{
		RecordID:        r.ID(),
		EmployeeID:      r.Key.EmployeeID,
		Designation:     emp.Designation,
		Period:          r.Key.Period.String(),
		Currency:        string(r.Currency),
		TotalEarnings:   r.TotalEarnings().StringFixed(2),
		TotalDeductions: r.TotalDeductions().StringFixed(2),
		NetSalary:       r.NetSalary.StringFixed(2),
		NetReporting:    s.converter.ToReportingCurrency(r, settings.DefaultExchangeRate).StringFixed(2),
		Status:          string(r.Status),
		BankName:        emp.BankName,
		AccountNumber:   emp.AccountNumber,
	}
	if !r.ExchangeRate.IsZero() {
		row.ExchangeRate = r.ExchangeRate.String()
	}
	if !r.PaymentDate.IsZero() {
		row.PaymentDate = r.PaymentDate.Format("2006-01-02")
	}
	return row
}

func (s *ReportServiceImpl) ExportPayrollRegisterCSV(ctx context.Context, req report.PayrollRegisterRequest, w io.Writer) error {
	register, err := s.PayrollRegister(ctx, req)
	if err != nil {
		return err
	}

	if err := gocsv.Marshal(&register.Rows, w); err != nil {
		return fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	return nil
}
