package migrations

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// column types per driver
type dialect struct {
	money     string
	timestamp string
	now       string
}

var dialects = map[string]dialect{
	"sqlite": {money: "TEXT", timestamp: "DATETIME", now: "CURRENT_TIMESTAMP"},
	"pgx":    {money: "NUMERIC(14,2)", timestamp: "TIMESTAMPTZ", now: "NOW()"},
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            contact TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS medicines (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            packing TEXT NOT NULL DEFAULT '',
            generic_name TEXT NOT NULL DEFAULT '',
            supplier_name TEXT NOT NULL DEFAULT '',
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS purchases (
            id TEXT PRIMARY KEY,
            supplier_name TEXT NOT NULL DEFAULT '',
            invoice_number TEXT NOT NULL DEFAULT '',
            payment_type TEXT NOT NULL DEFAULT '',
            purchase_date {{timestamp}},
            total_amount {{money}} NOT NULL DEFAULT 0,
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS medicine_stocks (
            id TEXT PRIMARY KEY,
            medicine_name TEXT NOT NULL DEFAULT '',
            packing TEXT NOT NULL DEFAULT '',
            generic_name TEXT NOT NULL DEFAULT '',
            batch_id TEXT NOT NULL DEFAULT '',
            expiration_date {{timestamp}},
            supplier_name TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL DEFAULT 0,
            mrp {{money}} NOT NULL DEFAULT 0,
            rate {{money}} NOT NULL DEFAULT 0,
            amount {{money}} NOT NULL DEFAULT 0,
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            contact TEXT NOT NULL,
            address TEXT NOT NULL,
            doctor_name TEXT NOT NULL DEFAULT '',
            doctor_address TEXT NOT NULL DEFAULT '',
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS invoices (
            id TEXT PRIMARY KEY,
            customer_name TEXT NOT NULL,
            invoice_date {{timestamp}} NOT NULL,
            total_amount {{money}} NOT NULL,
            total_discount {{money}} NOT NULL DEFAULT 0,
            net_total {{money}} NOT NULL,
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
            id TEXT PRIMARY KEY,
            stock_id TEXT NOT NULL,
            invoice_id TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            kind TEXT NOT NULL,
            created_at {{timestamp}} DEFAULT {{now}}
        );`,
	`CREATE INDEX IF NOT EXISTS idx_medicine_stocks_quantity ON medicine_stocks (quantity);`,
	`CREATE INDEX IF NOT EXISTS idx_medicine_stocks_expiration ON medicine_stocks (expiration_date);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_invoice ON stock_movements (invoice_id);`,
}

// Run creates the schema for the driver db was opened with.
func Run(db *sqlx.DB) error {
	d, ok := dialects[db.DriverName()]
	if !ok {
		return fmt.Errorf("migrations: unsupported driver %q", db.DriverName())
	}
	replacer := strings.NewReplacer("{{money}}", d.money, "{{timestamp}}", d.timestamp, "{{now}}", d.now)
	for _, stmt := range schema {
		if _, err := db.Exec(replacer.Replace(stmt)); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
