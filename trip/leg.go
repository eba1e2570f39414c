// Package trip reconstructs commute journeys from a chronologically ordered
// list of billed transit legs.
//
// The central operation is Filter, which walks the legs once and keeps only
// those belonging to a journey between a home-side and a work-side station,
// including journeys with transfers on the same day:
//
//	stations := trip.Stations{
//		From: trip.NewStationSet("Hilversum"),
//		To:   trip.NewStationSet("Amsterdam Centraal"),
//	}
//	commutes := trip.Workdays(trip.FilterPerProvider(legs, stations))
//
// FilterPerProvider runs Filter separately over each operator's legs, since
// station names are only comparable within one operator.
//
// Input legs must be ordered by date, and within a date in travel order,
// exactly as they appear on an NS statement. Unordered input is not detected.
package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Provider identifies the transport operator that billed a leg.
type Provider string

const (
	// NS is the Dutch national rail operator.
	NS Provider = "NS"
	// GVB is the Amsterdam urban transit operator.
	GVB Provider = "GVB"
)

// Providers lists all known providers in display order.
var Providers = []Provider{NS, GVB}

// ParseProvider converts a tag such as "ns" or "GVB" to a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

func (p Provider) String() string {
	return string(p)
}

// Date is a calendar date without a time component. The wrapped time is
// always midnight UTC so dates compare with ==.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses value with the given time layout and drops any time part.
func ParseDate(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Equal reports whether d and other fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Leg is one priced movement between two stations as billed on an invoice.
type Leg struct {
	Date     Date
	Provider Provider
	From     string
	To       string
	Price    decimal.Decimal
}

// IsDecoy reports whether the leg is a zero-priced row such as a supplement
// or an already settled line. Decoys never take part in a journey.
func (l Leg) IsDecoy() bool {
	return l.Price.IsZero()
}

func (l Leg) String() string {
	return fmt.Sprintf("%s %s %s -> %s %s", l.Date, l.Provider, l.From, l.To, l.Price.StringFixed(2))
}
