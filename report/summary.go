// Package report presents filtered commute legs: as a table with subtotals,
// as Beancount transactions and as calendar events.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/commute/trip"
)

// Day groups the legs travelled on one date.
type Day struct {
	Date trip.Date
	Legs []trip.Leg
}

// Days groups consecutive legs sharing a date. Legs are expected in
// chronological order, as returned by trip.FilterPerProvider.
func Days(legs []trip.Leg) []Day {
	var days []Day
	for _, leg := range legs {
		if n := len(days); n > 0 && days[n-1].Date.Equal(leg.Date) {
			days[n-1].Legs = append(days[n-1].Legs, leg)
			continue
		}
		days = append(days, Day{Date: leg.Date, Legs: []trip.Leg{leg}})
	}
	return days
}

// Total returns the summed price of the day's legs.
func (d Day) Total() decimal.Decimal {
	total := decimal.Zero
	for _, leg := range d.Legs {
		total = total.Add(leg.Price)
	}
	return total
}

// ByProvider sums the day's legs per provider.
func (d Day) ByProvider() []Subtotal {
	return subtotals(d.Legs)
}

// Route describes the stations visited in order, for example
// "Hilversum > Duivendrecht > Amsterdam Centraal". Where a leg does not
// depart from the previous arrival, the gap is shown as "…".
func (d Day) Route() string {
	var b strings.Builder
	for i, leg := range d.Legs {
		switch {
		case i == 0:
			b.WriteString(leg.From)
		case d.Legs[i-1].To != leg.From:
			b.WriteString(" … ")
			b.WriteString(leg.From)
		}
		b.WriteString(" > ")
		b.WriteString(leg.To)
	}
	return b.String()
}

// Subtotal is the amount billed by one provider.
type Subtotal struct {
	Provider trip.Provider
	Legs     int
	Amount   decimal.Decimal
}

// Summary holds the totals of a list of legs.
type Summary struct {
	Legs      int
	Days      int
	Providers []Subtotal
	Total     decimal.Decimal
}

// Summarize computes per-provider subtotals, the grand total and the number
// of distinct travel days.
func Summarize(legs []trip.Leg) Summary {
	s := Summary{
		Legs:      len(legs),
		Days:      len(Days(legs)),
		Providers: subtotals(legs),
		Total:     decimal.Zero,
	}
	for _, sub := range s.Providers {
		s.Total = s.Total.Add(sub.Amount)
	}
	return s
}

// subtotals returns one Subtotal per provider, ordered by provider name.
func subtotals(legs []trip.Leg) []Subtotal {
	byProvider := make(map[trip.Provider]*Subtotal)
	for _, leg := range legs {
		sub, ok := byProvider[leg.Provider]
		if !ok {
			sub = &Subtotal{Provider: leg.Provider, Amount: decimal.Zero}
			byProvider[leg.Provider] = sub
		}
		sub.Legs++
		sub.Amount = sub.Amount.Add(leg.Price)
	}

	providers := maps.Keys(byProvider)
	slices.Sort(providers)

	result := make([]Subtotal, 0, len(providers))
	for _, p := range providers {
		result = append(result, *byProvider[p])
	}
	return result
}
