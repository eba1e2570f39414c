package trip

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// StationSet is an immutable set of station names. Names are compared by
// exact string equality.
type StationSet struct {
	names map[string]struct{}
}

// NewStationSet builds a set from names. Duplicates have no effect.
func NewStationSet(names ...string) StationSet {
	s := StationSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.names[name] = struct{}{}
	}
	return s
}

// Contains reports whether name is a member of the set.
func (s StationSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of distinct stations.
func (s StationSet) Len() int {
	return len(s.names)
}

// Names returns the members in sorted order.
func (s StationSet) Names() []string {
	names := maps.Keys(s.names)
	slices.Sort(names)
	return names
}

// Stations pairs the home-side and work-side station sets of a commute.
// A station may belong to both sets.
type Stations struct {
	From StationSet
	To   StationSet
}

// Direct reports whether a single leg connects the two sides in either
// direction without transfers.
func (s Stations) Direct(leg Leg) bool {
	return s.From.Contains(leg.From) && s.To.Contains(leg.To) ||
		s.From.Contains(leg.To) && s.To.Contains(leg.From)
}
