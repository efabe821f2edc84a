package currency

import (
	"fmt"
	"strings"
)

// Code is an ISO 4217 currency code accepted on employee and payroll records.
type Code string

const (
	MYR Code = "MYR"
	USD Code = "USD"
)

// Supported lists the codes an employee may be paid in.
var Supported = []Code{MYR, USD}

// Parse normalizes s and checks it against Supported.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range Supported {
		if c == supported {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}

func (c Code) String() string {
	return string(c)
}

// Units names the major and minor unit of a currency, used when spelling amounts.
type Units struct {
	Major string
	Minor string
}

// UnitsOf returns the spelled-out unit names for c.
func UnitsOf(c Code) Units {
	switch c {
	case USD:
		return Units{Major: "dollars", Minor: "cents"}
	case MYR:
		return Units{Major: "ringgit", Minor: "sen"}
	default:
		return Units{Major: strings.ToLower(string(c)), Minor: "cents"}
	}
}
