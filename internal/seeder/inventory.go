package seeder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	lowStockProducts = 12
	outOfStockCount  = 12
	lowStockMin      = 15
	lowStockMax      = 20
	normalStockMin   = 20
	normalStockMax   = 1000
)

// InventoryLevel is one product's stock assignment.
type InventoryLevel struct {
	ProductID  int
	StockLevel int
}

// partitionInventory splits the catalog into three disjoint groups: 12
// products with low stock (15-20), 12 with zero stock and the rest with
// normal stock (20-1000). Group membership is a random permutation; the
// returned slice keeps the original product order. Small catalogs shrink the
// low and out groups instead of overlapping them.
func partitionInventory(r *rng, productIDs []int) []InventoryLevel {
	n := len(productIDs)
	lowCount := lowStockProducts
	if lowCount > n {
		lowCount = n
	}
	outCount := outOfStockCount
	if outCount > n-lowCount {
		outCount = n - lowCount
	}

	perm := r.perm(n)
	low := make(map[int]bool, lowCount)
	out := make(map[int]bool, outCount)
	for _, idx := range perm[:lowCount] {
		low[idx] = true
	}
	for _, idx := range perm[lowCount : lowCount+outCount] {
		out[idx] = true
	}

	levels := make([]InventoryLevel, n)
	for i, id := range productIDs {
		var stock int
		switch {
		case low[i]:
			stock = r.intRange(lowStockMin, lowStockMax)
		case out[i]:
			stock = 0
		default:
			stock = r.intRange(normalStockMin, normalStockMax)
		}
		levels[i] = InventoryLevel{ProductID: id, StockLevel: stock}
	}
	return levels
}

// generateInventoryStatus assigns a stock level to every product.
func (s *Seeder) generateInventoryStatus(ctx context.Context) (int, error) {
	s.log.Info("starting to add inventory status")

	ids, err := s.fetchProductIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		s.log.Warn("no products found; add products first")
		return 0, nil
	}

	levels := partitionInventory(s.rng, ids)
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		for _, lvl := range levels {
			if _, err := tx.Exec(ctx,
				`INSERT INTO inventory_status (product_id, stock_level, last_updated)
				 VALUES ($1, $2, $3)`,
				lvl.ProductID, lvl.StockLevel, s.now()); err != nil {
				return fmt.Errorf("insert inventory status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("inventory status added", zap.Int("count", len(levels)))
	return len(levels), nil
}

func (s *Seeder) fetchProductIDs(ctx context.Context) ([]int, error) {
	rows, err := s.conn.Query(ctx, `SELECT product_id FROM products ORDER BY product_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
