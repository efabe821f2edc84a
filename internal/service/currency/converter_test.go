package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
)

func record(code currency.Code, net, rate string) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		Key:          payroll.RecordKey{EmployeeID: "E001", Period: payroll.NewPeriod(time.January, 2025)},
		Currency:     code,
		NetSalary:    decimal.RequireFromString(net),
		ExchangeRate: decimal.RequireFromString(rate),
	}
}

func TestConverter_ToReportingCurrency(t *testing.T) {
	c := NewConverter(currency.MYR)
	defaultRate := decimal.RequireFromString("4.45")

	tests := []struct {
		name   string
		record payroll.PayrollRecord
		want   string
	}{
		{"reporting currency ignores rate", record(currency.MYR, "3000", "9.99"), "3000"},
		{"reporting currency with zero rate", record(currency.MYR, "3000", "0"), "3000"},
		{"foreign uses own rate", record(currency.USD, "1000", "4.2"), "4200"},
		{"foreign zero rate falls back to default", record(currency.USD, "1000", "0"), "4450"},
		{"negative rate yields zero", record(currency.USD, "1000", "-1"), "0"},
		{"unknown currency yields zero", record("SGD", "1000", "3.3"), "0"},
		{"blank currency yields zero", record("", "1000", "3.3"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToReportingCurrency(tt.record, defaultRate)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestConverter_NoUsableDefault(t *testing.T) {
	c := NewConverter(currency.MYR)

	got := c.ToReportingCurrency(record(currency.USD, "1000", "0"), decimal.Zero)
	assert.True(t, got.IsZero())
}
