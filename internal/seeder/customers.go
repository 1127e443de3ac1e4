package seeder

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// The fixed login fixture. Always customer 1, always inserted first.
const (
	testCustomerID       = 1
	testCustomerName     = "Test User"
	testCustomerEmail    = "test"
	testCustomerAddress  = "Test Address"
	testCustomerPhone    = "1234567890"
	testCustomerPassword = "123456"
)

const (
	adminName     = "Admin User"
	adminEmail    = "admin"
	adminRole     = "admin"
	adminPassword = "123456"
)

// customerRecord is one fully generated customer, produced by a pool worker
// and consumed by the single writer.
type customerRecord struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
	Hash     string
}

// newCustomerRecord generates the random profile fields and the hashed
// password. This is the CPU-bound part that the worker pool parallelizes.
func newCustomerRecord(r *rng, pwf *PasswordFactory) (customerRecord, error) {
	first := r.pick(firstNames)
	last := r.pick(lastNames)

	digits := make([]byte, r.intRange(10, 12))
	for i := range digits {
		digits[i] = byte('0' + r.intn(10))
	}

	password := pwf.Generate()
	hash, err := pwf.Hash(password)
	if err != nil {
		return customerRecord{}, fmt.Errorf("hash password: %w", err)
	}

	return customerRecord{
		Name: first + " " + last,
		Email: fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first), strings.ToLower(last), r.intn(1000), r.pick(emailDomains)),
		Phone: string(digits),
		Address: fmt.Sprintf("%d %s %s, %s, %s %05d",
			1+r.intn(9999), r.pick(streetNames), r.pick(streetSuffixes),
			r.pick(cityNames), r.pick(stateCodes), r.intn(100000)),
		Password: password,
		Hash:     hash,
	}, nil
}

// insertAdmin writes the single admin account into the users table.
func (s *Seeder) insertAdmin(ctx context.Context) (int, error) {
	s.log.Info("inserting default admin user")

	hash, err := s.pwf.Hash(adminPassword)
	if err != nil {
		return 0, err
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (name, email, role, password) VALUES ($1, $2, $3, $4)`,
			adminName, adminEmail, adminRole, hash)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert admin user: %w", err)
	}
	return 1, nil
}

// generateCustomers inserts the fixed test customer and then cfg.Customers
// generated ones. Generation runs on a bounded worker pool; the database
// session is not safe for concurrent use, so all inserts happen here on the
// calling goroutine, in worker-completion order. Each credential block is
// appended to the roster only after its insert returned the assigned id, so
// the roster always matches the table. The whole batch is one transaction.
func (s *Seeder) generateCustomers(ctx context.Context) (int, error) {
	n := s.cfg.Customers
	s.log.Info("starting to add customers", zap.Int("count", n), zap.Int("workers", s.cfg.Workers))

	ros, err := newRoster(s.cfg.RosterPath)
	if err != nil {
		return 0, err
	}
	defer ros.Close()

	inserted := 0
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		testHash, err := s.pwf.Hash(testCustomerPassword)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO customers (customer_id, name, email, password, address, phone)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			testCustomerID, testCustomerName, testCustomerEmail, testHash,
			testCustomerAddress, testCustomerPhone); err != nil {
			return fmt.Errorf("insert test customer: %w", err)
		}
		// The explicit id bypassed the sequence; advance it past the fixture.
		if _, err := tx.Exec(ctx,
			`SELECT setval('customers_customer_id_seq', $1, true)`, testCustomerID); err != nil {
			return fmt.Errorf("advance customer sequence: %w", err)
		}
		if err := ros.add(testCustomerID, testCustomerName, testCustomerEmail,
			testCustomerPassword, testCustomerAddress, testCustomerPhone); err != nil {
			return fmt.Errorf("write roster: %w", err)
		}
		inserted++

		results := make(chan customerRecord, s.cfg.Workers)
		errs := make(chan error, s.cfg.Workers)
		jobs := make(chan struct{})

		var wg sync.WaitGroup
		for w := 0; w < s.cfg.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range jobs {
					rec, err := newCustomerRecord(s.rng, s.pwf)
					if err != nil {
						// Keep draining jobs so the feeder never blocks.
						select {
						case errs <- err:
						default:
						}
						continue
					}
					results <- rec
				}
			}()
		}
		go func() {
			for i := 0; i < n; i++ {
				jobs <- struct{}{}
			}
			close(jobs)
		}()
		go func() {
			wg.Wait()
			close(results)
			close(errs)
		}()

		// Single writer: consume completed records and insert one at a time.
		var firstErr error
		for rec := range results {
			if firstErr != nil {
				continue
			}
			var id int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO customers (name, email, password, address, phone)
				 VALUES ($1, $2, $3, $4, $5)
				 RETURNING customer_id`,
				rec.Name, rec.Email, rec.Hash, rec.Address, rec.Phone).Scan(&id); err != nil {
				firstErr = fmt.Errorf("insert customer: %w", err)
				continue
			}
			if err := ros.add(id, rec.Name, rec.Email, rec.Password, rec.Address, rec.Phone); err != nil {
				firstErr = fmt.Errorf("write roster: %w", err)
				continue
			}
			inserted++
		}
		if firstErr == nil {
			if genErr, ok := <-errs; ok {
				firstErr = genErr
			}
		}
		return firstErr
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("customers added",
		zap.Int("count", inserted),
		zap.String("roster", s.cfg.RosterPath))
	return inserted, nil
}
