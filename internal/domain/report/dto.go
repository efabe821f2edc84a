package report

import (
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL REGISTER
// ========================================

type PayrollRegisterRequest struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	// OnlyPaid restricts the register to settled records.
	OnlyPaid bool `json:"only_paid"`
}

func (r *PayrollRegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := payroll.ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "must be a month name or 1-12",
		})
	}
	if r.Year < 1900 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "must be 1900 or later",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period assumes Validate has passed.
func (r *PayrollRegisterRequest) Period() payroll.Period {
	month, _ := payroll.ParseMonth(r.Month)
	return payroll.NewPeriod(month, r.Year)
}

// PayrollRegisterRow is one line of the exported register.
type PayrollRegisterRow struct {
	RecordID        string `csv:"record_id"`
	EmployeeID      string `csv:"employee_id"`
	Designation     string `csv:"designation"`
	Period          string `csv:"period"`
	Currency        string `csv:"currency"`
	TotalEarnings   string `csv:"total_earnings"`
	TotalDeductions string `csv:"total_deductions"`
	NetSalary       string `csv:"net_salary"`
	ExchangeRate    string `csv:"exchange_rate"`
	NetReporting    string `csv:"net_reporting"`
	PaymentDate     string `csv:"payment_date"`
	Status          string `csv:"status"`
	BankName        string `csv:"bank_name"`
	AccountNumber   string `csv:"account_number"`
}

type PayrollRegister struct {
	Period    string
	Reporting string
	Rows      []PayrollRegisterRow
}
