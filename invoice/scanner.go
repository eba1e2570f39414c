// Package invoice turns the text of an NS travel statement into trip legs.
//
// Statements list one billed leg per line. Two line shapes are recognized:
//
//	24-06-2025  NS   Reizen op saldo, dal/spits  Hilversum Duivendrecht  2  € 3,45
//	24-06-2025  GVB  Lijn 50  Station Duivendrecht Station Zuid  € 1,12
//
// Every other line is ignored. A recognized line with a date or price that
// cannot be read aborts the scan with a *ParseError, so a leg list is either
// complete or not returned at all.
package invoice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/robinvdvleuten/commute/telemetry"
	"github.com/robinvdvleuten/commute/trip"
)

// DateLayout is the date format used on statements.
const DateLayout = "02-01-2006"

var (
	nsLine = regexp.MustCompile(
		`^(?P<date>\d{2}-\d{2}-\d{4})\s+NS\s+(?P<kenmerk>.+spits|.+weekend)\s+(?P<route>.+?)\s+(?P<class>\d+)[\s\p{Zs}]+€[\s\p{Zs}]*(?P<price>[\d.,]+)[\s\p{Zs}]*$`,
	)
	gvbLine = regexp.MustCompile(
		`^(?P<date>\d{2}-\d{2}-\d{4})\s+GVB\s+(?P<kenmerk>Lijn(?:\s\d+)?)\s+(?P<route>.+?)[\s\p{Zs}]+€[\s\p{Zs}]*(?P<price>[\d.,]+)[\s\p{Zs}]*$`,
	)
)

// Line is a recognized fare line whose stations could not be resolved
// against the catalog.
type Line struct {
	Pos      Position
	Provider trip.Provider
	Text     string
}

// Result holds the outcome of a scan.
type Result struct {
	// Legs in document order.
	Legs []trip.Leg

	// Unmatched lists fare lines with unknown stations. NS lines are still
	// included in Legs with the unknown side left empty; GVB lines are not.
	Unmatched []Line
}

// Scanner recognizes fare lines. It is safe for concurrent use once built.
type Scanner struct {
	catalog Catalog
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCatalog replaces the built-in station catalog.
func WithCatalog(c Catalog) Option {
	return func(s *Scanner) {
		s.catalog = c
	}
}

// WithStations adds station names for provider on top of the catalog.
func WithStations(provider trip.Provider, names ...string) Option {
	return func(s *Scanner) {
		s.catalog.Add(provider, names...)
	}
}

// New creates a Scanner using DefaultCatalog unless configured otherwise.
func New(opts ...Option) *Scanner {
	s := &Scanner{catalog: DefaultCatalog()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads all fare lines from data. filename is only used in positions.
func (s *Scanner) Scan(ctx context.Context, filename string, data []byte) (*Result, error) {
	lines := strings.Split(string(data), "\n")

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("invoice.scan (%d lines)", len(lines)))
	defer timer.End()

	result := &Result{}
	for i, raw := range lines {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text := strings.TrimRight(raw, " \t\r\f")
		trimmed := strings.TrimLeft(text, " \t\f")
		if trimmed == "" {
			continue
		}

		line := fareLine{
			pos:    Position{Filename: filename, Line: i + 1},
			text:   trimmed,
			offset: len(text) - len(trimmed),
			source: text,
		}

		var (
			leg trip.Leg
			ok  bool
			err error
		)
		switch {
		case nsLine.MatchString(trimmed):
			leg, ok, err = s.parse(line, trip.NS, nsLine)
		case gvbLine.MatchString(trimmed):
			leg, ok, err = s.parse(line, trip.GVB, gvbLine)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		if leg.From == "" || leg.To == "" {
			result.Unmatched = append(result.Unmatched, Line{
				Pos:      line.at(0),
				Provider: leg.Provider,
				Text:     trimmed,
			})
		}
		if ok {
			result.Legs = append(result.Legs, leg)
		}
	}

	return result, nil
}

// fareLine is a single non-blank input line with its leading whitespace
// removed; offset remembers how much was removed so positions still point
// into the original text.
type fareLine struct {
	pos    Position
	text   string
	offset int
	source string
}

// at returns the position of byte index i of the trimmed text.
func (l fareLine) at(i int) Position {
	pos := l.pos
	pos.Column = utf8.RuneCountInString(l.source[:l.offset+i]) + 1
	return pos
}

// parse extracts a leg from a line known to match re. The boolean result
// reports whether the leg should be kept.
func (s *Scanner) parse(line fareLine, provider trip.Provider, re *regexp.Regexp) (trip.Leg, bool, error) {
	m := re.FindStringSubmatchIndex(line.text)
	group := func(name string) (string, int) {
		i := re.SubexpIndex(name)
		return line.text[m[2*i]:m[2*i+1]], m[2*i]
	}

	dateText, dateAt := group("date")
	date, err := trip.ParseDate(DateLayout, dateText)
	if err != nil {
		return trip.Leg{}, false, &ParseError{Pos: line.at(dateAt), Field: "date", Value: dateText, Err: err}
	}

	priceText, priceAt := group("price")
	price, err := ParsePrice(priceText)
	if err != nil {
		return trip.Leg{}, false, &ParseError{Pos: line.at(priceAt), Field: "price", Value: priceText, Err: err}
	}

	route, _ := group("route")
	from, to := s.catalog.Split(provider, route)

	leg := trip.Leg{
		Date:     date,
		Provider: provider,
		From:     from,
		To:       to,
		Price:    price,
	}

	// Tram and metro lines without both stops are check-in corrections,
	// not rides.
	keep := provider == trip.NS || (from != "" && to != "")
	return leg, keep, nil
}
