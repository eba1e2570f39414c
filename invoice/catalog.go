package invoice

import (
	"strings"

	"github.com/robinvdvleuten/commute/trip"
)

// Catalog lists the station names that can appear on an invoice, per
// provider. Invoices print departure and arrival as one run of text, so the
// catalog is what tells where one name ends and the next begins.
type Catalog map[trip.Provider][]string

// DefaultCatalog returns the built-in station names. The result is a copy
// and may be modified.
func DefaultCatalog() Catalog {
	return Catalog{
		trip.NS:  append([]string(nil), nsStations...),
		trip.GVB: append([]string(nil), gvbStops...),
	}
}

// Add appends names for provider, skipping blanks and names already known.
func (c Catalog) Add(provider trip.Provider, names ...string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || c.knows(provider, name) {
			continue
		}
		c[provider] = append(c[provider], name)
	}
}

func (c Catalog) knows(provider trip.Provider, name string) bool {
	for _, known := range c[provider] {
		if known == name {
			return true
		}
	}
	return false
}

// Split separates route text such as "Hilversum Amsterdam Centraal" into
// its departure and arrival station. The longest known name at the start
// and at the end of the text wins. A side that matches no known name is
// returned empty.
func (c Catalog) Split(provider trip.Provider, route string) (from, to string) {
	route = strings.TrimSpace(route)
	for _, name := range c[provider] {
		if len(name) > len(from) && hasWordPrefix(route, name) {
			from = name
		}
		if len(name) > len(to) && hasWordSuffix(route, name) {
			to = name
		}
	}
	return from, to
}

func hasWordPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	rest := s[len(prefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func hasWordSuffix(s, suffix string) bool {
	if !strings.HasSuffix(s, suffix) {
		return false
	}
	rest := s[:len(s)-len(suffix)]
	return rest == "" || rest[len(rest)-1] == ' ' || rest[len(rest)-1] == '\t'
}

var nsStations = []string{
	"Almere Centrum",
	"Almere Poort",
	"Amersfoort Centraal",
	"Amsterdam Amstel",
	"Amsterdam Bijlmer ArenA",
	"Amsterdam Centraal",
	"Amsterdam Lelylaan",
	"Amsterdam Muiderpoort",
	"Amsterdam RAI",
	"Amsterdam Science Park",
	"Amsterdam Sloterdijk",
	"Amsterdam Zuid",
	"Arnhem Centraal",
	"Baarn",
	"Breukelen",
	"Bussum Zuid",
	"Delft",
	"Den Haag Centraal",
	"Diemen",
	"Diemen Zuid",
	"Duivendrecht",
	"Eindhoven Centraal",
	"Haarlem",
	"Hilversum",
	"Hilversum Media Park",
	"Hilversum Sportpark",
	"Hollandsche Rading",
	"Leiden Centraal",
	"Naarden-Bussum",
	"Rotterdam Centraal",
	"Schiphol Airport",
	"Utrecht Centraal",
	"Weesp",
	"Zaandam",
	"Zandvoort aan Zee",
}

var gvbStops = []string{
	"Amstelstation",
	"Centraal Station",
	"Dam",
	"De Pijp",
	"Europaplein",
	"Leidseplein",
	"Museumplein",
	"Noorderpark",
	"Noord",
	"Rokin",
	"Station Duivendrecht",
	"Station Lelylaan",
	"Station Sloterdijk",
	"Station Zuid",
	"Vijzelgracht",
	"Waterlooplein",
	"Weesperplein",
	"Wibautstraat",
	"Zuidas",
}
