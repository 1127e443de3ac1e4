// Package seeder implements the one-shot generation-and-aggregation pipeline
// that fills an empty food-ordering schema with a synthetic dataset.
//
// Stage order: admin user, customers, products, orders and order details
// (which on success derive inventory levels, order buckets and peak-hour
// patterns), then promotions. Every stage is its own commit-or-rollback unit;
// a failed stage is logged and the run continues, so the dataset can end up
// partially seeded.
package seeder

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Config struct {
	// Customers is the number of generated customers, not counting the fixed
	// test customer with id 1.
	Customers int
	// Workers is the width of the customer generation pool.
	Workers int
	// BcryptCost is the cost factor for password hashing.
	BcryptCost int
	// RosterPath is where the plaintext credential roster is written.
	RosterPath string
	// RandSeed seeds the generator; 0 means time-based.
	RandSeed int64
}

// StageResult is what one pipeline stage reports back to the orchestrator.
type StageResult struct {
	Stage string
	Rows  int
	Err   error
}

// Seeder runs the pipeline over a single database session. The session is not
// safe for concurrent use; every write goes through the goroutine running Run.
type Seeder struct {
	conn *pgx.Conn
	log  *zap.Logger
	rng  *rng
	pwf  *PasswordFactory
	cfg  Config
	now  func() time.Time

	// products is kept from the catalog stage so the order engine can look up
	// unit prices without a query per line.
	products []Product
}

func New(conn *pgx.Conn, log *zap.Logger, cfg Config) *Seeder {
	if cfg.Customers < 0 {
		cfg.Customers = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 32
	}
	r := newRNG(cfg.RandSeed)
	return &Seeder{
		conn: conn,
		log:  log,
		rng:  r,
		pwf:  NewPasswordFactory(r, cfg.BcryptCost),
		cfg:  cfg,
		now:  time.Now,
	}
}

// Run executes every stage in order and returns the per-stage results. It
// never stops early: stage failures are logged and the next stage still runs.
// The aggregation stages only run when the orders stage committed.
func (s *Seeder) Run(ctx context.Context) []StageResult {
	var results []StageResult

	run := func(stage string, fn func(context.Context) (int, error)) StageResult {
		start := time.Now()
		rows, err := fn(ctx)
		res := StageResult{Stage: stage, Rows: rows, Err: err}
		if err != nil {
			s.log.Error("stage failed, continuing with next stage",
				zap.String("stage", stage), zap.Error(err))
		} else {
			s.log.Info("stage complete",
				zap.String("stage", stage),
				zap.Int("rows", rows),
				zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
		}
		return res
	}

	results = append(results, run("admin user", s.insertAdmin))
	results = append(results, run("customers", s.generateCustomers))
	results = append(results, run("products", s.generateProducts))

	orders := run("orders", s.generateOrders)
	results = append(results, orders)

	if orders.Err == nil {
		results = append(results, run("inventory status", s.generateInventoryStatus))

		lines, err := s.fetchOrderLines(ctx)
		if err != nil {
			s.log.Error("failed to read back order lines for aggregation", zap.Error(err))
			results = append(results,
				StageResult{Stage: "product orders", Err: err},
				StageResult{Stage: "order patterns", Err: err})
		} else {
			results = append(results, run("product orders", func(ctx context.Context) (int, error) {
				return s.generateProductOrders(ctx, lines)
			}))
			results = append(results, run("order patterns", func(ctx context.Context) (int, error) {
				return s.generateOrderPatterns(ctx, lines)
			}))
		}
	} else {
		s.log.Warn("skipping aggregation stages because the orders stage failed")
	}

	results = append(results, run("promotions", s.generatePromotions))

	return results
}

// inTx wraps fn in a transaction that commits on success and rolls back on
// error or panic.
func (s *Seeder) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
