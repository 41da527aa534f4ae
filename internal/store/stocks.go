package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medstore/m/domain"
)

const stockColumns = `id, medicine_name, packing, generic_name, batch_id, expiration_date, supplier_name, quantity, mrp, rate, amount, created_at`

func (s *Store) selectStocks(ctx context.Context, where string, page Page, args ...any) ([]domain.MedicineStock, error) {
	stocks := []domain.MedicineStock{}
	query := `SELECT ` + stockColumns + ` FROM medicine_stocks` + where + ` ORDER BY created_at, medicine_name` + page.clause()
	if err := s.db.SelectContext(ctx, &stocks, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list medicine stock: %w", err)
	}
	return stocks, nil
}

func (s *Store) ListStocks(ctx context.Context, page Page) ([]domain.MedicineStock, error) {
	return s.selectStocks(ctx, "", page)
}

// OutOfStock returns the batches whose quantity is exactly zero.
func (s *Store) OutOfStock(ctx context.Context, page Page) ([]domain.MedicineStock, error) {
	return s.selectStocks(ctx, " WHERE quantity = 0", page)
}

// Expired returns the batches whose expiration date is strictly before now.
func (s *Store) Expired(ctx context.Context, now time.Time, page Page) ([]domain.MedicineStock, error) {
	return s.selectStocks(ctx, " WHERE expiration_date < ?", page, utc(now))
}

func (s *Store) GetStock(ctx context.Context, id string) (domain.MedicineStock, error) {
	var stock domain.MedicineStock
	err := s.db.GetContext(ctx, &stock, s.db.Rebind(`SELECT `+stockColumns+` FROM medicine_stocks WHERE id = ?`), id)
	if err != nil {
		return domain.MedicineStock{}, notFound(err)
	}
	return stock, nil
}

// LatestStockByMedicine returns the most recently received batch of a
// medicine.
func (s *Store) LatestStockByMedicine(ctx context.Context, name string) (domain.MedicineStock, error) {
	var stock domain.MedicineStock
	err := s.db.GetContext(ctx, &stock, s.db.Rebind(`SELECT `+stockColumns+` FROM medicine_stocks WHERE medicine_name = ? ORDER BY created_at DESC, expiration_date DESC LIMIT 1`), name)
	if err != nil {
		return domain.MedicineStock{}, notFound(err)
	}
	return stock, nil
}

// InsertStock adds a batch outside of a purchase.
func (s *Store) InsertStock(ctx context.Context, stock *domain.MedicineStock) error {
	if stock.ID == "" {
		stock.ID = newID()
	}
	return s.InTx(ctx, func(tx *Tx) error {
		return tx.insertStock(ctx, stock)
	})
}

func (t *Tx) insertStock(ctx context.Context, stock *domain.MedicineStock) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`INSERT INTO medicine_stocks (id, medicine_name, packing, generic_name, batch_id, expiration_date, supplier_name, quantity, mrp, rate, amount, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		stock.ID, stock.MedicineName, stock.Packing, stock.GenericName, stock.BatchID, utc(stock.ExpirationDate),
		stock.SupplierName, stock.Quantity, stock.MRP, stock.Rate, stock.Amount, t.s.stamp())
	if err != nil {
		return fmt.Errorf("insert medicine stock: %w", err)
	}
	return nil
}

// DecrementStock subtracts qty from a batch in a single conditional update
// and returns the remaining quantity. It fails with ErrNotFound when the
// batch is absent and ErrInsufficientStock when it holds less than qty.
func (t *Tx) DecrementStock(ctx context.Context, id string, qty int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(`UPDATE medicine_stocks SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`), qty, id, qty)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	var remaining int64
	if err := t.tx.GetContext(ctx, &remaining, t.tx.Rebind(`SELECT quantity FROM medicine_stocks WHERE id = ?`), id); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("load stock quantity: %w", err)
	}
	if n == 0 {
		return remaining, fmt.Errorf("%w: batch %s holds %d, requested %d", ErrInsufficientStock, id, remaining, qty)
	}
	return remaining, nil
}

// InsertMovement records a stock debit.
func (t *Tx) InsertMovement(ctx context.Context, m *domain.StockMovement) error {
	if m.ID == "" {
		m.ID = newID()
	}
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`INSERT INTO stock_movements (id, stock_id, invoice_id, quantity, kind, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		m.ID, m.StockID, m.InvoiceID, m.Quantity, m.Kind, t.s.stamp())
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// MovementsForInvoice lists the stock debits booked by an invoice.
func (s *Store) MovementsForInvoice(ctx context.Context, invoiceID string) ([]domain.StockMovement, error) {
	movements := []domain.StockMovement{}
	err := s.db.SelectContext(ctx, &movements, s.db.Rebind(`SELECT id, stock_id, invoice_id, quantity, kind, created_at FROM stock_movements WHERE invoice_id = ? ORDER BY created_at`), invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return movements, nil
}
