package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicineStock is one received batch of a medicine. Quantity is the only
// field mutated after creation.
type MedicineStock struct {
	ID             string          `db:"id" json:"id"`
	MedicineName   string          `db:"medicine_name" json:"medicine_name"`
	Packing        string          `db:"packing" json:"packing"`
	GenericName    string          `db:"generic_name" json:"generic_name"`
	BatchID        string          `db:"batch_id" json:"batch_id"`
	ExpirationDate time.Time       `db:"expiration_date" json:"expiration_date"`
	SupplierName   string          `db:"supplier_name" json:"supplier_name"`
	Quantity       int64           `db:"quantity" json:"quantity"`
	MRP            decimal.Decimal `db:"mrp" json:"mrp"`
	Rate           decimal.Decimal `db:"rate" json:"rate"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt      string          `db:"created_at" json:"created_at"`
}

// Expired reports whether the batch expired strictly before now.
func (s MedicineStock) Expired(now time.Time) bool {
	return s.ExpirationDate.Before(now)
}

const MovementInvoice = "invoice"

// StockMovement records a quantity debit against a stock batch.
type StockMovement struct {
	ID        string `db:"id" json:"id"`
	StockID   string `db:"stock_id" json:"stock_id"`
	InvoiceID string `db:"invoice_id" json:"invoice_id"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	Kind      string `db:"kind" json:"kind"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
