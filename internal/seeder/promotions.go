package seeder

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	promotionChance     = 0.2
	promotionMinDays    = 10
	promotionMaxDays    = 30
	promotionMinPercent = 5.0
	promotionMaxPercent = 50.0
)

// Promotion is one generated discount window.
type Promotion struct {
	ProductID int
	StartDate time.Time
	EndDate   time.Time
	Discount  float64
}

// drawPromotions gives each product a 20% chance of a promotion starting
// today. The end date is drawn once, 10-30 days out, and shared by every
// promotion in the run; only the discount varies per product.
func drawPromotions(r *rng, productIDs []int, today time.Time) []Promotion {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 0, r.intRange(promotionMinDays, promotionMaxDays))

	var promos []Promotion
	for _, id := range productIDs {
		if r.float64() >= promotionChance {
			continue
		}
		promos = append(promos, Promotion{
			ProductID: id,
			StartDate: start,
			EndDate:   end,
			Discount:  round2(r.floatRange(promotionMinPercent, promotionMaxPercent)),
		})
	}
	return promos
}

// generatePromotions inserts the drawn promotions. Each insert runs in its own
// savepoint so a single bad row is rolled back and logged without losing the
// rest of the batch.
func (s *Seeder) generatePromotions(ctx context.Context) (int, error) {
	s.log.Info("starting to add promotions")

	ids, err := s.fetchProductIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		s.log.Warn("no products found; add products first")
		return 0, nil
	}

	promos := drawPromotions(s.rng, ids, s.now())

	inserted := 0
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		for _, p := range promos {
			sp, err := tx.Begin(ctx)
			if err != nil {
				return err
			}
			if _, err := sp.Exec(ctx,
				`INSERT INTO promotions (product_id, start_date, end_date, discount_percentage)
				 VALUES ($1, $2, $3, $4)`,
				p.ProductID, p.StartDate, p.EndDate, p.Discount); err != nil {
				_ = sp.Rollback(ctx)
				s.log.Warn("skipping promotion",
					zap.Int("product_id", p.ProductID), zap.Error(err))
				continue
			}
			if err := sp.Commit(ctx); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("promotions added", zap.Int("count", inserted))
	return inserted, nil
}
