package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Order history starts here; order dates are drawn up to the current day.
var orderHistoryStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)

const (
	minOrderLines = 3
	maxOrderLines = 7
	minQuantity   = 1
	maxQuantity   = 5
)

// orderLine is one generated order detail row.
type orderLine struct {
	ProductID  int
	Quantity   int
	TotalPrice float64
}

// orderCountFor draws how many orders a customer has. Uniform 1..10, except
// the top bucket: a draw of 10 is overridden with 10% probability by a draw
// from 10..30, which puts a heavy tail on frequent customers only.
func orderCountFor(r *rng) int {
	base := r.intRange(1, 10)
	if base == 10 && r.float64() < 0.1 {
		return r.intRange(10, 30)
	}
	return base
}

// orderTimestamp draws a random order time between orderHistoryStart and now.
// When the drawn date is today, each time component is clamped so the result
// never passes the current wall clock: the hour never exceeds the current
// hour; the minute is only clamped when the drawn hour equals the current
// hour, and the second only when the drawn minute equals the current minute.
// The second false return marks a timestamp after today, which the caller
// skips; the range makes that unreachable, it is purely defensive.
func orderTimestamp(r *rng, now time.Time) (time.Time, bool) {
	loc := now.Location()
	start := time.Date(orderHistoryStart.Year(), orderHistoryStart.Month(), orderHistoryStart.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Count the span in calendar days. Subtracting the local midnights would
	// undercount by one across a DST transition, where a "day" is 23 hours.
	startUTC := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	todayUTC := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	deltaDays := int(todayUTC.Sub(startUTC).Hours() / 24)

	day := start.AddDate(0, 0, r.intRange(0, deltaDays))

	var hour, minute, second int
	if day.Equal(today) {
		hour = r.intRange(0, now.Hour())
		if hour == now.Hour() {
			minute = r.intRange(0, now.Minute())
		} else {
			minute = r.intn(60)
		}
		if minute == now.Minute() {
			second = r.intRange(0, now.Second())
		} else {
			second = r.intn(60)
		}
	} else {
		hour = r.intn(24)
		minute = r.intn(60)
		second = r.intn(60)
	}

	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, loc)
	return ts, !day.After(today)
}

// drawOrderLines generates 3-7 lines against the given catalog. The total is
// the quantity times the product's static unit price, rounded to cents.
func drawOrderLines(r *rng, products []Product) []orderLine {
	lines := make([]orderLine, r.intRange(minOrderLines, maxOrderLines))
	for i := range lines {
		p := products[r.intn(len(products))]
		qty := r.intRange(minQuantity, maxQuantity)
		lines[i] = orderLine{
			ProductID:  p.ID,
			Quantity:   qty,
			TotalPrice: round2(float64(qty) * p.Price),
		}
	}
	return lines
}

// generateOrders creates the full order history in one transaction. Every
// order line also bumps the product's running popularity score and overwrites
// its dynamic-pricing snapshot with the line's total price. The total, not
// the unit price, is what downstream pricing reads expect.
func (s *Seeder) generateOrders(ctx context.Context) (int, error) {
	s.log.Info("starting to add orders and order details")

	customerIDs, err := s.fetchCustomerIDs(ctx)
	if err != nil {
		return 0, err
	}
	products := s.products
	if len(products) == 0 {
		if products, err = s.fetchProducts(ctx); err != nil {
			return 0, err
		}
	}
	if len(customerIDs) == 0 || len(products) == 0 {
		s.log.Warn("customers or products not found; add customers and products first")
		return 0, nil
	}

	orderCount := 0
	lineCount := 0
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		for _, customerID := range customerIDs {
			for i := orderCountFor(s.rng); i > 0; i-- {
				ts, ok := orderTimestamp(s.rng, s.now())
				if !ok {
					continue
				}

				var orderID int
				if err := tx.QueryRow(ctx,
					`INSERT INTO orders (customer_id, order_date) VALUES ($1, $2) RETURNING order_id`,
					customerID, ts).Scan(&orderID); err != nil {
					return fmt.Errorf("insert order: %w", err)
				}
				orderCount++

				for _, line := range drawOrderLines(s.rng, products) {
					if _, err := tx.Exec(ctx,
						`INSERT INTO order_details (order_id, product_id, quantity, total_price)
						 VALUES ($1, $2, $3, $4)`,
						orderID, line.ProductID, line.Quantity, line.TotalPrice); err != nil {
						return fmt.Errorf("insert order detail: %w", err)
					}
					lineCount++

					if _, err := tx.Exec(ctx,
						`INSERT INTO popular_products (product_id, popularity_score)
						 VALUES ($1, $2)
						 ON CONFLICT (product_id)
						 DO UPDATE SET popularity_score = popular_products.popularity_score + EXCLUDED.popularity_score`,
						line.ProductID, line.Quantity); err != nil {
						return fmt.Errorf("update popularity score: %w", err)
					}

					if _, err := tx.Exec(ctx,
						`INSERT INTO dynamic_pricing (product_id, current_price, last_updated)
						 VALUES ($1, $2, $3)
						 ON CONFLICT (product_id)
						 DO UPDATE SET current_price = EXCLUDED.current_price, last_updated = EXCLUDED.last_updated`,
						line.ProductID, line.TotalPrice, s.now()); err != nil {
						return fmt.Errorf("update dynamic pricing: %w", err)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("orders and order details added",
		zap.Int("orders", orderCount),
		zap.Int("order_details", lineCount))
	return orderCount, nil
}

// LineRecord is one order detail joined with its order date, the input to the
// aggregation stages.
type LineRecord struct {
	ProductID int
	OrderDate time.Time
	Quantity  int
}

func (s *Seeder) fetchOrderLines(ctx context.Context) ([]LineRecord, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT od.product_id, o.order_date, od.quantity
		 FROM order_details od
		 JOIN orders o ON od.order_id = o.order_id`)
	if err != nil {
		return nil, fmt.Errorf("query order details: %w", err)
	}
	defer rows.Close()

	var lines []LineRecord
	for rows.Next() {
		var l LineRecord
		if err := rows.Scan(&l.ProductID, &l.OrderDate, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Seeder) fetchCustomerIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.conn.Query(ctx, `SELECT customer_id FROM customers ORDER BY customer_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Seeder) fetchProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.conn.Query(ctx, `SELECT product_id, price FROM products ORDER BY product_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
