package seeder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const copyBatchSize = 1000

// seasonOf maps a month to its northern-hemisphere season label.
func seasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Autumn"
	}
}

// BucketRow is one aggregated product-orders bucket. DayOfWeek runs 0=Sunday
// through 6=Saturday.
type BucketRow struct {
	ProductID  int
	Hour       int
	DayOfWeek  int
	Season     string
	OrderCount int
}

// groupOrderBuckets sums line quantities per (product, hour, day of week,
// season) and returns the buckets sorted by those four keys ascending, season
// compared as a plain string.
func groupOrderBuckets(lines []LineRecord) []BucketRow {
	type key struct {
		productID int
		hour      int
		dow       int
		season    string
	}
	counts := make(map[key]int)
	for _, l := range lines {
		k := key{
			productID: l.ProductID,
			hour:      l.OrderDate.Hour(),
			dow:       int(l.OrderDate.Weekday()),
			season:    seasonOf(l.OrderDate.Month()),
		}
		counts[k] += l.Quantity
	}

	buckets := make([]BucketRow, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, BucketRow{
			ProductID:  k.productID,
			Hour:       k.hour,
			DayOfWeek:  k.dow,
			Season:     k.season,
			OrderCount: c,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
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
	return buckets
}

// PeakRow is a product's busiest hour with its total quantity across all days
// and seasons.
type PeakRow struct {
	ProductID  int
	Hour       int
	OrderCount int
}

// peakHours finds, per product, the hour with the highest total quantity.
// Ties go to the smallest hour. Results are sorted by product id.
func peakHours(lines []LineRecord) []PeakRow {
	perProduct := make(map[int]map[int]int)
	for _, l := range lines {
		hours := perProduct[l.ProductID]
		if hours == nil {
			hours = make(map[int]int)
			perProduct[l.ProductID] = hours
		}
		hours[l.OrderDate.Hour()] += l.Quantity
	}

	peaks := make([]PeakRow, 0, len(perProduct))
	for productID, hours := range perProduct {
		best := PeakRow{ProductID: productID, Hour: -1}
		for hour, count := range hours {
			if count > best.OrderCount || (count == best.OrderCount && hour < best.Hour) {
				best.Hour = hour
				best.OrderCount = count
			}
		}
		peaks = append(peaks, best)
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].ProductID < peaks[j].ProductID })
	return peaks
}

// generateProductOrders materializes the order buckets with bulk copies of
// 1000 rows at a time inside one transaction.
func (s *Seeder) generateProductOrders(ctx context.Context, lines []LineRecord) (int, error) {
	s.log.Info("starting to add product orders")

	buckets := groupOrderBuckets(lines)
	if len(buckets) == 0 {
		s.log.Warn("no order details found; add orders first")
		return 0, nil
	}

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		cols := []string{"product_id", "order_hour", "order_day_of_week", "season", "order_count"}
		for start := 0; start < len(buckets); start += copyBatchSize {
			end := start + copyBatchSize
			if end > len(buckets) {
				end = len(buckets)
			}
			batch := buckets[start:end]

			copied, err := tx.CopyFrom(ctx, pgx.Identifier{"product_orders"}, cols,
				pgx.CopyFromSlice(len(batch), func(i int) ([]any, error) {
					b := batch[i]
					return []any{b.ProductID, b.Hour, b.DayOfWeek, b.Season, b.OrderCount}, nil
				}))
			if err != nil {
				return fmt.Errorf("copy product orders: %w", err)
			}
			if copied != int64(len(batch)) {
				return fmt.Errorf("copy product orders: wrote %d of %d rows", copied, len(batch))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("product orders added", zap.Int("count", len(buckets)))
	return len(buckets), nil
}

// generateOrderPatterns records each product's peak hour. Counts accumulate
// across runs through the conflict update.
func (s *Seeder) generateOrderPatterns(ctx context.Context, lines []LineRecord) (int, error) {
	s.log.Info("starting to add order patterns")

	peaks := peakHours(lines)
	if len(peaks) == 0 {
		s.log.Warn("no order details found; add orders first")
		return 0, nil
	}

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		for _, p := range peaks {
			if _, err := tx.Exec(ctx,
				`INSERT INTO order_patterns (product_id, order_hour, order_count)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (product_id, order_hour)
				 DO UPDATE SET order_count = order_patterns.order_count + EXCLUDED.order_count`,
				p.ProductID, p.Hour, p.OrderCount); err != nil {
				return fmt.Errorf("upsert order pattern: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("order patterns added", zap.Int("count", len(peaks)))
	return len(peaks), nil
}
