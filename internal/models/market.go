// Package models defines data structures for trendscore
package models

import (
	"sort"
	"time"
)

// EODBar represents a single day's price data
type EODBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// EODResponse represents the EOD data response from a market-data provider
type EODResponse struct {
	Data []EODBar `json:"data"`
}

// SeriesSnapshot is a fetched OHLCV series kept in the market cache
type SeriesSnapshot struct {
	Symbol    string    `json:"symbol"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Bars      []EODBar  `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Covers reports whether the snapshot was fetched for a range containing [start, end].
func (s *SeriesSnapshot) Covers(start, end time.Time) bool {
	return !s.From.After(start) && !s.To.Before(end)
}

// Between returns the bars dated within [start, end].
func (s *SeriesSnapshot) Between(start, end time.Time) []EODBar {
	out := make([]EODBar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Valid reports whether a bar is complete: positive prices, positive volume and a
// high/low envelope that contains open and close.
func (b EODBar) Valid() bool {
	if b.Date.IsZero() || b.Volume <= 0 {
		return false
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return false
	}
	if b.High < b.Low || b.High < b.Open || b.High < b.Close {
		return false
	}
	return b.Low <= b.Open && b.Low <= b.Close
}

// CleanSeries returns a dense, ascending copy of bars with invalid bars removed.
// When two bars share a date the later one in the input wins.
func CleanSeries(bars []EODBar) []EODBar {
	out := make([]EODBar, 0, len(bars))
	for _, b := range bars {
		if b.Valid() {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && sameDay(deduped[n-1].Date, b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
