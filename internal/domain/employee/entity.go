package employee

import (
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/shopspring/decimal"
)

// Employee is a directory entry. Name is the primary key.
type Employee struct {
	Name          string
	Designation   string
	JoinDate      time.Time
	DateOfBirth   time.Time
	Currency      currency.Code
	BankName      string
	AccountNumber string
	BasicSalary   decimal.Decimal
	Status        Status
	Remark        string
	LastIncrement *Increment
	LastBonus     *Bonus
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Increment is the most recent salary increment applied to an employee.
type Increment struct {
	Date       time.Time       `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Bonus is the most recent bonus recorded for an employee.
type Bonus struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// Filter narrows a directory listing. A nil Status lists everyone.
type Filter struct {
	Status *Status
}

func (f Filter) Match(e Employee) bool {
	return f.Status == nil || e.Status == *f.Status
}
