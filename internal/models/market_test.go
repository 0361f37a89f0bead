package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func bar(d int, c float64) EODBar {
	return EODBar{Date: day(d), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
}

func TestEODBar_Valid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(b *EODBar)
		want bool
	}{
		{"complete", func(b *EODBar) {}, true},
		{"zero date", func(b *EODBar) { b.Date = time.Time{} }, false},
		{"zero volume", func(b *EODBar) { b.Volume = 0 }, false},
		{"zero close", func(b *EODBar) { b.Close = 0 }, false},
		{"negative open", func(b *EODBar) { b.Open = -1 }, false},
		{"high below low", func(b *EODBar) { b.High, b.Low = 5, 6 }, false},
		{"close above high", func(b *EODBar) { b.Close = 20 }, false},
		{"open below low", func(b *EODBar) { b.Open = 8 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bar(1, 10)
			tt.mod(&b)
			assert.Equal(t, tt.want, b.Valid())
		})
	}
}

func TestCleanSeries(t *testing.T) {
	invalid := bar(2, 10)
	invalid.Volume = 0
	later := bar(3, 12)
	later.Date = later.Date.Add(16 * time.Hour)

	in := []EODBar{bar(4, 13), bar(3, 11), invalid, bar(1, 9), later}
	out := CleanSeries(in)

	require.Len(t, out, 3)
	assert.Equal(t, day(1), out[0].Date)
	assert.Equal(t, 12.0, out[1].Close, "later same-day bar wins")
	assert.Equal(t, day(4), out[2].Date)

	// Input untouched
	assert.Equal(t, 13.0, in[0].Close)
	assert.Len(t, in, 5)
}

func TestCleanSeries_Empty(t *testing.T) {
	assert.Empty(t, CleanSeries(nil))
}

func TestSeriesSnapshot_CoversAndBetween(t *testing.T) {
	s := &SeriesSnapshot{
		Symbol: "BHP.AU",
		From:   day(1),
		To:     day(10),
		Bars:   []EODBar{bar(2, 10), bar(5, 11), bar(9, 12)},
	}

	assert.True(t, s.Covers(day(1), day(10)))
	assert.True(t, s.Covers(day(3), day(8)))
	assert.False(t, s.Covers(day(1), day(11)))
	assert.False(t, s.Covers(day(0), day(5)))

	got := s.Between(day(3), day(9))
	require.Len(t, got, 2)
	assert.Equal(t, 11.0, got[0].Close)
	assert.Equal(t, 12.0, got[1].Close)
}
