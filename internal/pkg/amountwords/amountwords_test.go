package amountwords

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{15, "fifteen"},
		{40, "forty"},
		{45, "forty-five"},
		{100, "one hundred"},
		{305, "three hundred five"},
		{3300, "three thousand three hundred"},
		{1000000, "one million"},
		{2000017, "two million seventeen"},
		{1234567, "one million two hundred thirty-four thousand five hundred sixty-seven"},
		{-45, "minus forty-five"},
		{math.MaxInt64, "nine quintillion two hundred twenty-three quadrillion three hundred seventy-two trillion thirty-six billion eight hundred fifty-four million seven hundred seventy-five thousand eight hundred seven"},
		{math.MinInt64, "minus nine quintillion two hundred twenty-three quadrillion three hundred seventy-two trillion thirty-six billion eight hundred fifty-four million seven hundred seventy-five thousand eight hundred eight"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.n), "Number(%d)", tt.n)
	}
}

func TestSpell(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		major  string
		minor  string
		want   string
	}{
		{"whole ringgit", "3300", "ringgit", "sen", "Three thousand three hundred ringgit only"},
		{"with sen", "3300.50", "ringgit", "sen", "Three thousand three hundred ringgit and fifty sen only"},
		{"dollars and cents", "4450.07", "dollars", "cents", "Four thousand four hundred fifty dollars and seven cents only"},
		{"rounds to cents", "10.999", "dollars", "cents", "Eleven dollars only"},
		{"zero", "0", "ringgit", "sen", "Zero ringgit only"},
		{"negative", "-12.30", "ringgit", "sen", "Minus twelve ringgit and thirty sen only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Spell(decimal.RequireFromString(tt.amount), tt.major, tt.minor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpell_TooLarge(t *testing.T) {
	for _, amount := range []string{
		"9223372036854775808",
		"18446744073709551616.50",
		"10000000000000000000",
		"-9223372036854775809",
	} {
		t.Run(amount, func(t *testing.T) {
			_, err := Spell(decimal.RequireFromString(amount), "ringgit", "sen")
			assert.ErrorIs(t, err, ErrAmountTooLarge)
		})
	}
}

func TestSpell_LargestWholeAmount(t *testing.T) {
	got, err := Spell(decimal.RequireFromString("9223372036854775807.99"), "ringgit", "sen")
	require.NoError(t, err)
	assert.Equal(t, "Nine quintillion two hundred twenty-three quadrillion three hundred seventy-two trillion thirty-six billion eight hundred fifty-four million seven hundred seventy-five thousand eight hundred seven ringgit and ninety-nine sen only", got)
}
