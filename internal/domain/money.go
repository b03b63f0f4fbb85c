package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern accepts plain digits, Indian grouping (12,34,567) or western grouping
// (1,234,567), with an optional fractional part.
var amountPattern = regexp.MustCompile(`^([0-9]+|[0-9]{1,3}(,[0-9]{3})+|[0-9]{1,2}(,[0-9]{2})*,[0-9]{3})(\.[0-9]+)?$`)

var currencyPrefixes = []string{"₹", "inr", "rs.", "rs"}

// ParseMoney converts caller-supplied text into a non-negative fixed-point amount.
// It is the only place form text becomes a number; everything past it works on decimals.
func ParseMoney(field, s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	if s == "" {
		return decimal.Zero, &InvalidInputError{Field: field, Value: raw, Reason: "amount is required"}
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, &InvalidInputError{Field: field, Value: raw, Reason: "amount must not be negative"}
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, &InvalidInputError{Field: field, Value: raw, Reason: "amount is not a number"}
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidInputError{Field: field, Value: raw, Reason: err.Error()}
	}
	return d, nil
}

// RequireNonNegative rejects negative amounts that arrive already typed
func RequireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &InvalidInputError{Field: field, Value: d.String(), Reason: "amount must not be negative"}
	}
	return nil
}

// FormatRupees renders an amount with Indian digit grouping (12,34,567.50).
// Whole amounts are printed without a fractional part.
func FormatRupees(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	d = d.Abs()

	whole := d.Truncate(0)
	frac := d.Sub(whole)

	digits := whole.String()
	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	if !frac.IsZero() {
		grouped += frac.StringFixed(2)[1:]
	}
	if neg {
		return "-" + grouped
	}
	return grouped
}

// FormatPercent renders a fractional rate as a percentage with two decimals
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
