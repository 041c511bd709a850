package domain

import "time"

// OpeningStatus classifies a pharmacy's availability at one instant.
type OpeningStatus int

const (
	// The pharmacy is outside today's open window (or its schedule failed
	// to parse, which is treated as closed rather than risking a closed
	// pharmacy being recommended as open).
	StatusClosed OpeningStatus = iota
	// Open with more than an hour left before closing.
	StatusOpen
	// Open, but the remaining open window is one hour or less.
	StatusClosingSoon
	// Continuous service; never closed and never closing soon.
	StatusAlwaysOpen
)

func (s OpeningStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosingSoon:
		return "closing_soon"
	case StatusAlwaysOpen:
		return "always_open"
	default:
		return "closed"
	}
}

// IsClosed reports whether the pharmacy cannot serve the order right now.
func (s OpeningStatus) IsClosed() bool { return s == StatusClosed }

// OpenBeyondSoon reports whether the pharmacy is open with more than the
// closing-soon window remaining.
func (s OpeningStatus) OpenBeyondSoon() bool {
	return s == StatusOpen || s == StatusAlwaysOpen
}

const closingSoonWindow = time.Hour

// ClassifyOpening derives the opening status of a source at instant `at`,
// evaluated in the reference timezone `loc`. The instant is a parameter so
// classification stays deterministic under test; nothing here reads the
// wall clock.
func ClassifyOpening(src PharmacySource, at time.Time, loc *time.Location) OpeningStatus {
	if src.IsAlwaysOpen() {
		return StatusAlwaysOpen
	}

	opens, err := time.Parse(time.RFC3339, src.OpensAt)
	if err != nil {
		return StatusClosed
	}
	closes, err := time.Parse(time.RFC3339, src.ClosesAt)
	if err != nil {
		return StatusClosed
	}

	now := at.In(loc)
	opens = opens.In(loc)
	closes = closes.In(loc)

	if now.Before(opens) {
		return StatusClosed
	}
	if now.Before(closes) {
		if closes.Sub(now) <= closingSoonWindow {
			return StatusClosingSoon
		}
		return StatusOpen
	}

	// Already past closing; stays closed until the next day's window.
	return StatusClosed
}
