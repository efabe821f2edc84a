package currency

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
)

// Converter normalizes net pay into the reporting currency. It never fails:
// a record it cannot convert contributes zero and is logged.
type Converter struct {
	reporting currency.Code
}

func NewConverter(reporting currency.Code) *Converter {
	return &Converter{reporting: reporting}
}

func (c *Converter) Reporting() currency.Code {
	return c.reporting
}

// ToReportingCurrency returns the record's net salary in the reporting
// currency. Foreign records use their own rate when non-zero, else defaultRate.
func (c *Converter) ToReportingCurrency(r payroll.PayrollRecord, defaultRate decimal.Decimal) decimal.Decimal {
	if r.Currency == c.reporting {
		return r.NetSalary
	}
	if _, err := currency.Parse(string(r.Currency)); err != nil {
		slog.Warn("cannot convert record with unknown currency", "id", r.ID(), "currency", r.Currency)
		return decimal.Zero
	}

	rate := r.ExchangeRate
	if rate.IsZero() {
		rate = defaultRate
	}
	if !rate.IsPositive() {
		slog.Warn("cannot convert record without a usable exchange rate", "id", r.ID(), "rate", rate.String())
		return decimal.Zero
	}
	return r.NetSalary.Mul(rate)
}
