// Package money represents monetary values in centavos (minor units).
// No floats: arithmetic stays on int64, formatting is presentation only.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value in centavos.
type Amount int64

// ErrInvalidAmount indicates input that is not a non-negative decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// FromCents wraps a raw centavo count.
func FromCents(cents int64) Amount { return Amount(cents) }

// Cents returns the raw centavo count.
func (a Amount) Cents() int64 { return int64(a) }

// Mul scales the amount by an item quantity.
func (a Amount) Mul(qty int) Amount { return a * Amount(qty) }

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool { return a < 0 }

// Parse converts user decimal input ("2.50", "2,50", "10") into centavos.
// Negative or non-numeric input is rejected with ErrInvalidAmount; values
// with more than two fraction digits are rejected rather than rounded.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	// Accept either '.' or ',' as the decimal separator, but only one of them.
	sep := -1
	for i, r := range s {
		if r == '.' || r == ',' {
			if sep >= 0 {
				return 0, ErrInvalidAmount
			}
			sep = i
		}
	}

	units, frac := s, ""
	if sep >= 0 {
		units, frac = s[:sep], s[sep+1:]
	}
	if units == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if units == "" {
		units = "0"
	}
	if len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	// ParseInt tolerates a leading sign, so "2.-5" would coerce silently.
	// Only bare digit runs are acceptable here.
	if !digitsOnly(units) || (frac != "" && !digitsOnly(frac)) {
		return 0, ErrInvalidAmount
	}

	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	var f int64
	if frac != "" {
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if len(frac) == 1 {
			f *= 10
		}
	}
	if u > (math.MaxInt64-f)/100 {
		return 0, ErrInvalidAmount
	}
	return Amount(u*100 + f), nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders the amount for display in pt-BR style, e.g. "R$ 1.234,56".
func (a Amount) Format() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("R$ ")
	for i, d := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	frac := cents % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}
