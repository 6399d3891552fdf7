package models

import "time"

// PricePoint represents one trading day's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ascending-by-date sequence of daily closes for one symbol.
// It contains trading days only; calendar gaps are not filled. An empty series
// means "no data", which callers must treat as a distinct outcome rather than
// a zero-valued result.
type PriceSeries []PricePoint

// First returns the earliest point in the series.
func (s PriceSeries) First() PricePoint { return s[0] }

// Last returns the latest point in the series.
func (s PriceSeries) Last() PricePoint { return s[len(s)-1] }

// Nearest returns the point whose date is closest to target by absolute day
// distance. Ties go to the earlier date: the scan runs left to right and only
// a strictly smaller distance replaces the current best.
func (s PriceSeries) Nearest(target time.Time) PricePoint {
	best := s[0]
	bestDist := absDays(best.Date, target)
	for _, p := range s[1:] {
		if d := absDays(p.Date, target); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

func absDays(a, b time.Time) int {
	d := int(midnightUTC(a).Sub(midnightUTC(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
