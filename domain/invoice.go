package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice bills one customer. It does not reference the stock batch it
// debited; see StockMovement for that.
type Invoice struct {
	ID            string          `db:"id" json:"id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	InvoiceDate   time.Time       `db:"invoice_date" json:"invoice_date"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	TotalDiscount decimal.Decimal `db:"total_discount" json:"total_discount"`
	NetTotal      decimal.Decimal `db:"net_total" json:"net_total"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
}
