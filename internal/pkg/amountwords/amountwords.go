// Package amountwords spells monetary amounts in English for payslips, e.g.
// "Three thousand three hundred ringgit and fifty sen only".
package amountwords

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []string{"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion"}
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// ErrAmountTooLarge is returned for amounts whose whole part exceeds an int64.
var ErrAmountTooLarge = errors.New("amount too large to spell")

// Spell renders amount rounded to two decimals with the given unit names.
// The minor part is omitted when it is zero.
func Spell(amount decimal.Decimal, major, minor string) (string, error) {
	amount = amount.Round(2)
	negative := amount.IsNegative()
	amount = amount.Abs()

	whole := amount.Truncate(0)
	if whole.GreaterThan(maxAmount) {
		return "", ErrAmountTooLarge
	}
	cents := amount.Sub(whole).Mul(hundred).IntPart()

	var b strings.Builder
	if negative {
		b.WriteString("minus ")
	}
	b.WriteString(Number(whole.IntPart()))
	b.WriteString(" ")
	b.WriteString(major)
	if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(Number(cents))
		b.WriteString(" ")
		b.WriteString(minor)
	}
	b.WriteString(" only")

	return capitalize(b.String()), nil
}

// Number spells an integer in lower case.
func Number(n int64) string {
	if n < 0 {
		// -(n+1) stays in range for math.MinInt64
		return "minus " + spell(uint64(-(n+1))+1)
	}
	return spell(uint64(n))
}

func spell(n uint64) string {
	if n == 0 {
		return ones[0]
	}

	var groups []string
	for scale := 0; n > 0; scale++ {
		chunk := n % 1000
		n /= 1000
		if chunk == 0 {
			continue
		}
		words := belowThousand(int(chunk))
		if scales[scale] != "" {
			words += " " + scales[scale]
		}
		groups = append([]string{words}, groups...)
	}
	return strings.Join(groups, " ")
}

func belowThousand(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100]+" hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, ones[n])
	case n%10 == 0:
		parts = append(parts, tens[n/10])
	default:
		parts = append(parts, tens[n/10]+"-"+ones[n%10])
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
