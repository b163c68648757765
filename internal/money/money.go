package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedInput is returned when a raw numeric field cannot be parsed.
	ErrMalformedInput = errors.New("malformed numeric input")
	// ErrInvalidAmount is returned when a negative value appears in a context
	// that forbids it (quantity, unit price, discount).
	ErrInvalidAmount = errors.New("invalid amount")
)

// Amount is a currency value with fixed 2-decimal precision. All arithmetic
// stays in decimal space so totals never accumulate binary float drift.
type Amount struct {
	d decimal.Decimal
}

func Zero() Amount {
	return Amount{decimal.Zero}
}

func FromFloat(f float64) Amount {
	return Amount{decimal.NewFromFloat(f).Round(2)}
}

func FromInt(n int64) Amount {
	return Amount{decimal.NewFromInt(n)}
}

// Parse parses a raw amount string. Grouping commas are stripped first, so
// form values like "15,000.00" are accepted.
func Parse(s string) (Amount, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return Zero(), fmt.Errorf("%w: empty value", ErrMalformedInput)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Zero(), fmt.Errorf("%w: %q", ErrMalformedInput, s)
	}
	return Amount{d.Round(2)}, nil
}

// ParseNonNegative parses like Parse and rejects negative values.
func ParseNonNegative(s string) (Amount, error) {
	a, err := Parse(s)
	if err != nil {
		return Zero(), err
	}
	if a.IsNegative() {
		return Zero(), fmt.Errorf("%w: %q must not be negative", ErrInvalidAmount, s)
	}
	return a, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{a.d.Add(b.d)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{a.d.Sub(b.d)}
}

// MulInt multiplies by a quantity. The result needs no rounding since the
// amount already carries 2-decimal precision.
func (a Amount) MulInt(n int) Amount {
	return Amount{a.d.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRate multiplies by a fractional rate and rounds half-even to 2 decimals.
// Banker's rounding is applied here, once, at the final total - never per line.
func (a Amount) MulRate(rate decimal.Decimal) Amount {
	return Amount{a.d.Mul(rate).RoundBank(2)}
}

func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// String renders the plain fixed-point value, e.g. "35000.00".
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

// Format renders "<symbol> #,##0.00", e.g. "N 35,000.00".
func (a Amount) Format(symbol string) string {
	fixed := a.d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	dot := strings.IndexByte(fixed, '.')
	grouped := groupThousands(fixed[:dot]) + fixed[dot:]
	if neg {
		grouped = "-" + grouped
	}
	return symbol + " " + grouped
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
