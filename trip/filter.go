package trip

import "golang.org/x/exp/slices"

// Direction tells which side of the commute an open chain is heading to.
type Direction int

const (
	// None means no chain is open.
	None Direction = iota
	// ToWork chains started at a home-side station.
	ToWork
	// ToHome chains started at a work-side station.
	ToHome
)

func (d Direction) String() string {
	switch d {
	case ToWork:
		return "to-work"
	case ToHome:
		return "to-home"
	default:
		return "none"
	}
}

// chain is the filter state between two legs: the buffered legs of a
// journey in progress, where it is heading and the day it started on.
// The zero value is the idle state.
type chain struct {
	legs      []Leg
	direction Direction
	anchor    Date
}

func startChain(leg Leg, direction Direction) chain {
	return chain{
		legs:      []Leg{leg},
		direction: direction,
		anchor:    leg.Date,
	}
}

// continues reports whether leg can be appended: same day as the first leg
// and departing where the previous leg arrived.
func (c chain) continues(leg Leg) bool {
	last := c.legs[len(c.legs)-1]
	return leg.Date.Equal(c.anchor) && last.To == leg.From
}

// arrives reports whether leg ends the journey on the opposite side.
func (c chain) arrives(leg Leg, stations Stations) bool {
	switch c.direction {
	case ToWork:
		return stations.To.Contains(leg.To)
	case ToHome:
		return stations.From.Contains(leg.To)
	}
	return false
}

// step applies a single leg to state c. It returns the next state, the legs
// that became part of the result and whether leg was consumed. An
// unconsumed leg broke the open chain and must be fed again to the returned
// (idle) state, so it gets a chance to start a journey of its own.
func step(c chain, leg Leg, stations Stations) (next chain, emit []Leg, consumed bool) {
	if leg.IsDecoy() {
		return c, nil, true
	}

	if c.direction == None {
		switch {
		case stations.Direct(leg):
			return chain{}, []Leg{leg}, true
		case stations.From.Contains(leg.From):
			return startChain(leg, ToWork), nil, true
		case stations.To.Contains(leg.From):
			return startChain(leg, ToHome), nil, true
		}
		return chain{}, nil, true
	}

	if !c.continues(leg) {
		return chain{}, nil, false
	}

	c.legs = append(c.legs, leg)
	if c.arrives(leg, stations) {
		return chain{}, c.legs, true
	}
	return c, nil, true
}

// Filter returns the legs that belong to a commute between stations.From and
// stations.To, in their original order.
//
// A leg qualifies on its own when it connects both sides directly. Otherwise
// consecutive legs on the same day, each departing where the previous one
// arrived, qualify together when the first departs from one side and the
// last arrives at the other. Such a chain is kept or dropped as a whole;
// chains still open at the end of legs are dropped. Zero-priced legs are
// skipped without affecting a chain.
//
// legs must be in chronological order. Filter never modifies legs and always
// returns a new slice.
func Filter(legs []Leg, stations Stations) []Leg {
	return pick(legs, filterIndices(legs, stations))
}

// FilterPerProvider applies Filter to the legs of each provider on its own
// and merges the kept legs back in their original order. Operators print
// their own station names, so a ride with one never continues a journey
// with another; an interleaved tram ride must not break a train journey.
func FilterPerProvider(legs []Leg, stations Stations) []Leg {
	positions := make(map[Provider][]int)
	for i, leg := range legs {
		positions[leg.Provider] = append(positions[leg.Provider], i)
	}

	kept := make([]int, 0, len(legs))
	for _, at := range positions {
		own := pick(legs, at)
		for _, j := range filterIndices(own, stations) {
			kept = append(kept, at[j])
		}
	}
	slices.Sort(kept)

	return pick(legs, kept)
}

// filterIndices runs the chain state machine over legs and returns the
// positions of the kept legs in ascending order.
func filterIndices(legs []Leg, stations Stations) []int {
	kept := make([]int, 0, len(legs))

	var (
		state chain
		open  []int // positions of state.legs
	)
	for i := 0; i < len(legs); {
		next, emit, consumed := step(state, legs[i], stations)
		switch {
		case !consumed:
			open = open[:0]
		case len(emit) > 0:
			kept = append(append(kept, open...), i)
			open = open[:0]
		case len(next.legs) > len(state.legs):
			open = append(open, i)
		}
		state = next
		if consumed {
			i++
		}
	}

	return kept
}

func pick(legs []Leg, positions []int) []Leg {
	result := make([]Leg, 0, len(positions))
	for _, i := range positions {
		result = append(result, legs[i])
	}
	return result
}
