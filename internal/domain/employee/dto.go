package employee

import (
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	Name          string          `json:"name"`
	Designation   string          `json:"designation"`
	JoinDate      string          `json:"join_date"`
	DateOfBirth   *string         `json:"date_of_birth,omitempty"`
	Currency      string          `json:"currency"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	Remark        string          `json:"remark"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.JoinDate) {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.DateOfBirth != nil && !validator.IsEmpty(*r.DateOfBirth) {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if _, err := currency.Parse(r.Currency); err != nil {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be MYR or USD"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if !validator.IsEmpty(r.AccountNumber) && !validator.IsNumeric(r.AccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "account_number", Message: "must contain digits only"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity converts a validated request into a new directory entry.
// Status and history are left for the directory to initialize.
func (r *CreateEmployeeRequest) ToEntity() Employee {
	joinDate, _ := time.Parse(dateLayout, r.JoinDate)
	var dob time.Time
	if r.DateOfBirth != nil {
		dob, _ = time.Parse(dateLayout, *r.DateOfBirth)
	}
	code, _ := currency.Parse(r.Currency)

	return Employee{
		Name:          r.Name,
		Designation:   r.Designation,
		JoinDate:      joinDate,
		DateOfBirth:   dob,
		Currency:      code,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		BasicSalary:   r.BasicSalary,
		Remark:        r.Remark,
	}
}

// UpdateEmployeeRequest is a patch: nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Name          string           `json:"-"`
	Designation   *string          `json:"designation,omitempty"`
	JoinDate      *string          `json:"join_date,omitempty"`
	DateOfBirth   *string          `json:"date_of_birth,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	BasicSalary   *decimal.Decimal `json:"basic_salary,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Remark        *string          `json:"remark,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.JoinDate != nil {
		if _, ok := validator.IsValidDate(*r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.DateOfBirth != nil && !validator.IsEmpty(*r.DateOfBirth) {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Currency != nil {
		if _, err := currency.Parse(*r.Currency); err != nil {
			errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be MYR or USD"})
		}
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.AccountNumber != nil && !validator.IsEmpty(*r.AccountNumber) && !validator.IsNumeric(*r.AccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "account_number", Message: "must contain digits only"})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Active or Inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the patch into e and returns the result.
func (r *UpdateEmployeeRequest) Apply(e Employee) Employee {
	if r.Designation != nil {
		e.Designation = *r.Designation
	}
	if r.JoinDate != nil {
		e.JoinDate, _ = time.Parse(dateLayout, *r.JoinDate)
	}
	if r.DateOfBirth != nil {
		e.DateOfBirth, _ = time.Parse(dateLayout, *r.DateOfBirth)
	}
	if r.Currency != nil {
		e.Currency, _ = currency.Parse(*r.Currency)
	}
	if r.BankName != nil {
		e.BankName = *r.BankName
	}
	if r.AccountNumber != nil {
		e.AccountNumber = *r.AccountNumber
	}
	if r.BasicSalary != nil {
		e.BasicSalary = *r.BasicSalary
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	if r.Remark != nil {
		e.Remark = *r.Remark
	}
	return e
}

type ApplyIncrementRequest struct {
	Name       string          `json:"-"`
	Date       string          `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
}

func (r *ApplyIncrementRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Percentage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "percentage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordBonusRequest struct {
	Name   string          `json:"-"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *RecordBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1900 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 1900 or later"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IncrementResponse struct {
	Date       string          `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
}

type BonusResponse struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

type EmployeeResponse struct {
	Name          string             `json:"name"`
	Designation   string             `json:"designation"`
	JoinDate      string             `json:"join_date"`
	DateOfBirth   *string            `json:"date_of_birth,omitempty"`
	Currency      string             `json:"currency"`
	BankName      string             `json:"bank_name"`
	AccountNumber string             `json:"account_number"`
	BasicSalary   decimal.Decimal    `json:"basic_salary"`
	Status        string             `json:"status"`
	Remark        string             `json:"remark"`
	LastIncrement *IncrementResponse `json:"last_increment,omitempty"`
	LastBonus     *BonusResponse     `json:"last_bonus,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		Name:          e.Name,
		Designation:   e.Designation,
		JoinDate:      formatDate(e.JoinDate),
		Currency:      string(e.Currency),
		BankName:      e.BankName,
		AccountNumber: e.AccountNumber,
		BasicSalary:   e.BasicSalary,
		Status:        string(e.Status),
		Remark:        e.Remark,
	}
	if !e.DateOfBirth.IsZero() {
		dob := formatDate(e.DateOfBirth)
		resp.DateOfBirth = &dob
	}
	if e.LastIncrement != nil {
		resp.LastIncrement = &IncrementResponse{
			Date:       formatDate(e.LastIncrement.Date),
			Percentage: e.LastIncrement.Percentage,
		}
	}
	if e.LastBonus != nil {
		resp.LastBonus = &BonusResponse{Year: e.LastBonus.Year, Amount: e.LastBonus.Amount}
	}
	return resp
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
