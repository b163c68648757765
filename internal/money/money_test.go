package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStripsGroupingCommas(t *testing.T) {
	a, err := Parse("15,000.00")
	require.NoError(t, err)
	assert.Equal(t, "15000.00", a.String())
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "12.3.4", "12x"} {
		_, err := Parse(raw)
		assert.True(t, errors.Is(err, ErrMalformedInput), "input %q", raw)
	}
}

func TestParseNonNegativeRejectsNegative(t *testing.T) {
	_, err := ParseNonNegative("-5.00")
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	a, err := ParseNonNegative("0")
	require.NoError(t, err)
	assert.True(t, a.IsZero())
}

func TestMulRateBankersRounding(t *testing.T) {
	rate := decimal.RequireFromString("0.1")

	// 0.125 rounds to the even neighbour 0.12, 0.135 to 0.14.
	a, _ := Parse("1.25")
	assert.Equal(t, "0.12", a.MulRate(rate).String())

	b, _ := Parse("1.35")
	assert.Equal(t, "0.14", b.MulRate(rate).String())

	// Plain case: 35000 * 0.10 = 3500.00 exactly.
	c, _ := Parse("35000.00")
	assert.Equal(t, "3500.00", c.MulRate(rate).String())
}

func TestArithmetic(t *testing.T) {
	price, _ := Parse("15000.00")
	assert.Equal(t, "30000.00", price.MulInt(2).String())

	sub := price.MulInt(2).Add(FromInt(5000))
	assert.Equal(t, "35000.00", sub.String())

	assert.Equal(t, "-5.00", FromInt(5).Sub(FromInt(10)).String())
	assert.True(t, FromInt(5).Sub(FromInt(10)).IsNegative())
}

func TestMin(t *testing.T) {
	a := FromInt(100)
	b := FromInt(50)
	assert.Equal(t, "50.00", a.Min(b).String())
	assert.Equal(t, "50.00", b.Min(a).String())
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":           "N 0.00",
		"999.5":       "N 999.50",
		"1000":        "N 1,000.00",
		"35000":       "N 35,000.00",
		"1234567.89":  "N 1,234,567.89",
		"-30000":      "N -30,000.00",
		"-1234567.89": "N -1,234,567.89",
	}
	for raw, want := range cases {
		a, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, a.Format("N"), "input %q", raw)
	}
}
