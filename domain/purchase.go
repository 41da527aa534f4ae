package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID            string          `db:"id" json:"id"`
	SupplierName  string          `db:"supplier_name" json:"supplier_name"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	PaymentType   string          `db:"payment_type" json:"payment_type"`
	PurchaseDate  time.Time       `db:"purchase_date" json:"purchase_date"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
}
