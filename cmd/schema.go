package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suatkocar/food-ordering-system/internal/database"
)

var schemaConn connFlags

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Drop and recreate the database with the full food-ordering schema",
	Long: `Drops the target database if it exists, recreates it and creates all
tables: customers, users, products, orders, order_details, payment_details,
popular_products, dynamic_pricing, order_patterns, product_orders,
inventory_status, promotions, shopping_session and cart_item.
The seed command expects this to have run first.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	registerConnFlags(schemaCmd, &schemaConn)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := schemaConn.resolve()
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	ctx := context.Background()

	// Recreate the database from the admin session.
	adminConn, err := pgx.Connect(ctx, cfg.ConnString("postgres"))
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	log.Info("dropping existing database if it exists", zap.String("database", cfg.Name))
	if _, err := adminConn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgIdentifier(cfg.Name)); err != nil {
		adminConn.Close(ctx)
		return fmt.Errorf("drop database: %w", err)
	}

	log.Info("creating database", zap.String("database", cfg.Name))
	if _, err := adminConn.Exec(ctx, "CREATE DATABASE "+pgIdentifier(cfg.Name)); err != nil {
		adminConn.Close(ctx)
		return fmt.Errorf("create database: %w", err)
	}
	adminConn.Close(ctx)

	conn, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	for _, stmt := range schemaStatements() {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute DDL: %w", err)
		}
	}

	log.Info("all tables created", zap.Int("statements", len(schemaStatements())))
	return nil
}

// schemaStatements returns the DDL in foreign-key order.
func schemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255),
			email VARCHAR(255),
			address TEXT,
			phone VARCHAR(20),
			password VARCHAR(255)
		)`,

		// Admin accounts live in their own table; the sequence starts high so
		// user ids never collide with customer-style account ids.
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255),
			email VARCHAR(255),
			role VARCHAR(20) DEFAULT 'admin',
			password VARCHAR(255)
		)`,
		`ALTER SEQUENCE users_user_id_seq RESTART WITH 1000000`,

		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name VARCHAR(255),
			cost NUMERIC(10,2),
			price NUMERIC(10,2),
			dynamic_price NUMERIC(10,2) DEFAULT NULL,
			category VARCHAR(100),
			last_updated TIMESTAMP DEFAULT NOW(),
			ranking INTEGER DEFAULT 9999,
			low_stock BOOLEAN DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			customer_id BIGINT REFERENCES customers(customer_id),
			order_date TIMESTAMP,
			order_status VARCHAR(50) DEFAULT 'Delivered'
		)`,

		`CREATE TABLE IF NOT EXISTS order_details (
			order_detail_id SERIAL PRIMARY KEY,
			order_id INTEGER REFERENCES orders(order_id),
			product_id INTEGER REFERENCES products(product_id),
			quantity INTEGER,
			total_price NUMERIC(10,2)
		)`,

		`CREATE TABLE IF NOT EXISTS payment_details (
			payment_id SERIAL PRIMARY KEY,
			order_id INTEGER REFERENCES orders(order_id),
			payment_amount NUMERIC(10,2),
			payment_date TIMESTAMP,
			payment_method VARCHAR(50),
			payment_status VARCHAR(20) DEFAULT 'Pending'
		)`,

		`CREATE TABLE IF NOT EXISTS popular_products (
			product_id INTEGER PRIMARY KEY REFERENCES products(product_id),
			popularity_score NUMERIC(10,2)
		)`,

		`CREATE TABLE IF NOT EXISTS dynamic_pricing (
			product_id INTEGER PRIMARY KEY REFERENCES products(product_id),
			current_price NUMERIC(10,2),
			last_updated TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS order_patterns (
			product_id INTEGER REFERENCES products(product_id),
			order_hour INTEGER,
			order_count INTEGER,
			PRIMARY KEY (product_id, order_hour)
		)`,

		`CREATE TABLE IF NOT EXISTS product_orders (
			product_order_id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(product_id),
			order_hour INTEGER,
			order_day_of_week INTEGER,
			season VARCHAR(50),
			order_count INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS inventory_status (
			product_id INTEGER PRIMARY KEY REFERENCES products(product_id),
			stock_level INTEGER,
			last_updated TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS promotions (
			promotion_id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(product_id),
			start_date DATE,
			end_date DATE,
			discount_percentage NUMERIC(5,2)
		)`,

		`CREATE TABLE IF NOT EXISTS shopping_session (
			session_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE REFERENCES customers(customer_id),
			total NUMERIC(10,2) NOT NULL DEFAULT 0.00,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			modified_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS cart_item (
			cart_item_id SERIAL PRIMARY KEY,
			session_id BIGINT REFERENCES shopping_session(session_id),
			product_id INTEGER REFERENCES products(product_id),
			quantity INTEGER NOT NULL,
			date_added TIMESTAMP DEFAULT NOW()
		)`,
	}
}
