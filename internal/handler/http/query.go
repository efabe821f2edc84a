package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
)

var errInvalidYear = validator.ValidationError{Field: "year", Message: "must be 1900 or later"}

// monthYearFromQuery reads ?month= (name or 1-12) and ?year=.
func monthYearFromQuery(r *http.Request) (time.Month, int, error) {
	var errs validator.ValidationErrors

	month, err := payroll.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month name or 1-12"})
	}
	year, ok := parseYear(r.URL.Query().Get("year"))
	if !ok {
		errs = append(errs, errInvalidYear)
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}

func yearFromQuery(r *http.Request) (int, error) {
	year, ok := parseYear(r.URL.Query().Get("year"))
	if !ok {
		return 0, validator.ValidationErrors{errInvalidYear}
	}
	return year, nil
}

func parseYear(s string) (int, bool) {
	year, err := strconv.Atoi(s)
	return year, err == nil && year >= 1900
}

func boolQuery(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
