package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts an invoice amount such as "3,45" or "1.204,50" to a
// decimal. A comma is the decimal separator; when one is present, dots are
// thousand separators. Without a comma a dot is taken as decimal separator.
func ParsePrice(s string) (decimal.Decimal, error) {
	normalized := strings.TrimSpace(s)
	if strings.Contains(normalized, ",") {
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price %q: negative amount", s)
	}
	return d, nil
}
