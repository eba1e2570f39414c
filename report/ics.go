package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/robinvdvleuten/commute/trip"
)

// Calendar writes commute days as all-day iCalendar events, which makes
// travel days easy to cross-check against an agenda.
type Calendar struct {
	Currency string

	// Now stamps the events; defaults to time.Now.
	Now func() time.Time
}

// Write serializes one event per day of legs to w.
func (c *Calendar) Write(w io.Writer, legs []trip.Leg) error {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	stamp := now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//robinvdvleuten//commute//EN")

	for _, day := range Days(legs) {
		event := cal.AddEvent(fmt.Sprintf("commute-%s@commute", day.Date.Format("20060102")))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day.Date.Time)
		event.SetAllDayEndAt(day.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Commute %s", Money(day.Total(), c.Currency)))
		event.SetDescription(c.describe(day))
	}

	return cal.SerializeTo(w)
}

func (c *Calendar) describe(day Day) string {
	lines := make([]string, 0, len(day.Legs))
	for _, leg := range day.Legs {
		lines = append(lines, fmt.Sprintf("%s %s > %s %s", leg.Provider, leg.From, leg.To, Money(leg.Price, c.Currency)))
	}
	return strings.Join(lines, "\n")
}
