package trip

import "time"

// IsWorkday reports whether d falls on Monday through Friday.
func (d Date) IsWorkday() bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// Workdays returns the legs dated on a business day, preserving order.
func Workdays(legs []Leg) []Leg {
	result := make([]Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.Date.IsWorkday() {
			result = append(result, leg)
		}
	}
	return result
}
