package dashboard

import "github.com/shopspring/decimal"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Period       string             `json:"period"`
	Currency     string             `json:"currency"`
	PaidTotal    decimal.Decimal    `json:"paid_total"`
	PayrollTotal decimal.Decimal    `json:"payroll_total"`
	Headcount    HeadcountResponse  `json:"headcount"`
	YearSeries   YearSeriesResponse `json:"year_series"`
}

// ========== MONTHLY TOTAL ==========

// MonthlyTotalResponse is the reporting-currency sum of one month's records
type MonthlyTotalResponse struct {
	Month    string          `json:"month"`
	Year     int             `json:"year"`
	OnlyPaid bool            `json:"only_paid"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}

// ========== YEAR SERIES (bar chart) ==========

type MonthAmount struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// YearSeriesResponse holds paid totals for January through December
type YearSeriesResponse struct {
	Year     int           `json:"year"`
	Currency string        `json:"currency"`
	Months   []MonthAmount `json:"months"`
}

// ========== HEADCOUNT ==========

// HeadcountResponse compares paid records in a period with the active workforce
type HeadcountResponse struct {
	Month       string `json:"month"`
	Year        int    `json:"year"`
	PaidCount   int    `json:"paid_count"`
	ActiveCount int    `json:"active_count"`
}
