package seeder

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.December, "Winter"},
		{time.January, "Winter"},
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Autumn"},
		{time.November, "Autumn"},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, seasonOf(tt.month))
		})
	}
}

func lineAt(productID int, ts time.Time, qty int) LineRecord {
	return LineRecord{ProductID: productID, OrderDate: ts, Quantity: qty}
}

func TestGroupOrderBuckets(t *testing.T) {
	// Sunday Jan 5 2020 and Monday Jan 6 2020.
	sun := time.Date(2020, time.January, 5, 12, 0, 0, 0, time.UTC)
	mon := time.Date(2020, time.January, 6, 12, 30, 0, 0, time.UTC)
	julSun := time.Date(2020, time.July, 5, 12, 0, 0, 0, time.UTC)

	lines := []LineRecord{
		lineAt(1, sun, 2),
		lineAt(1, sun.Add(5*time.Minute), 3), // same bucket
		lineAt(1, mon, 1),                    // different day of week
		lineAt(1, julSun, 4),                 // different season
		lineAt(2, sun, 5),
	}

	buckets := groupOrderBuckets(lines)
	require.Len(t, buckets, 4)

	assert.Equal(t, []BucketRow{
		{ProductID: 1, Hour: 12, DayOfWeek: 0, Season: "Summer", OrderCount: 4},
		{ProductID: 1, Hour: 12, DayOfWeek: 0, Season: "Winter", OrderCount: 5},
		{ProductID: 1, Hour: 12, DayOfWeek: 1, Season: "Winter", OrderCount: 1},
		{ProductID: 2, Hour: 12, DayOfWeek: 0, Season: "Winter", OrderCount: 5},
	}, buckets)
}

func TestGroupOrderBucketsPreservesTotalQuantity(t *testing.T) {
	r := newRNG(17)
	now := time.Date(2026, time.August, 28, 14, 0, 0, 0, time.UTC)

	var lines []LineRecord
	total := 0
	for i := 0; i < 1000; i++ {
		ts, ok := orderTimestamp(r, now)
		require.True(t, ok)
		qty := r.intRange(1, 5)
		lines = append(lines, lineAt(1+r.intn(10), ts, qty))
		total += qty
	}

	buckets := groupOrderBuckets(lines)
	sum := 0
	for _, b := range buckets {
		sum += b.OrderCount
	}
	assert.Equal(t, total, sum)

	sorted := sort.SliceIsSorted(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		return a.Season < b.Season
	})
	assert.True(t, sorted, "buckets not in key order")
}

func TestPeakHours(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2020, time.March, 10, hour, 0, 0, 0, time.UTC)
	}

	lines := []LineRecord{
		lineAt(1, at(9), 2),
		lineAt(1, at(18), 5),
		lineAt(1, at(18), 1),
		lineAt(2, at(8), 3),
		lineAt(2, at(20), 3), // tie, smaller hour wins
		lineAt(3, at(0), 1),
	}

	peaks := peakHours(lines)
	assert.Equal(t, []PeakRow{
		{ProductID: 1, Hour: 18, OrderCount: 6},
		{ProductID: 2, Hour: 8, OrderCount: 3},
		{ProductID: 3, Hour: 0, OrderCount: 1},
	}, peaks)
}

func TestPeakHoursEmpty(t *testing.T) {
	assert.Empty(t, peakHours(nil))
	assert.Empty(t, groupOrderBuckets(nil))
}
