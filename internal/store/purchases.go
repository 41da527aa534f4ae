package store

import (
	"context"
	"fmt"

	"medstore/m/domain"
)

// CreatePurchase records a purchase together with the stock batch it
// received. Both rows are written or neither is.
func (s *Store) CreatePurchase(ctx context.Context, p *domain.Purchase, stock *domain.MedicineStock) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if stock.ID == "" {
		stock.ID = newID()
	}
	if stock.SupplierName == "" {
		stock.SupplierName = p.SupplierName
	}

	return s.InTx(ctx, func(tx *Tx) error {
		if err := tx.insertStock(ctx, stock); err != nil {
			return err
		}
		_, err := tx.tx.ExecContext(ctx, tx.tx.Rebind(`INSERT INTO purchases (id, supplier_name, invoice_number, payment_type, purchase_date, total_amount, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
			p.ID, p.SupplierName, p.InvoiceNumber, p.PaymentType, utc(p.PurchaseDate), p.TotalAmount, s.stamp())
		if err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
		return nil
	})
}

func (s *Store) ListPurchases(ctx context.Context, page Page) ([]domain.Purchase, error) {
	purchases := []domain.Purchase{}
	err := s.db.SelectContext(ctx, &purchases, `SELECT id, supplier_name, invoice_number, payment_type, purchase_date, total_amount, created_at FROM purchases ORDER BY created_at, purchase_date`+page.clause())
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// DeletePurchase removes the purchase only; its stock batch stays.
func (s *Store) DeletePurchase(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "purchases", id)
}
