package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medstore/m/domain"
)

const invoiceColumns = `id, customer_name, invoice_date, total_amount, total_discount, net_total, created_at`

func validateInvoice(inv *domain.Invoice) error {
	if err := required("customer name", strings.TrimSpace(inv.CustomerName)); err != nil {
		return err
	}
	if inv.InvoiceDate.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

// InsertInvoice writes an invoice inside the transaction.
func (t *Tx) InsertInvoice(ctx context.Context, inv *domain.Invoice) error {
	if err := validateInvoice(inv); err != nil {
		return err
	}
	if inv.ID == "" {
		inv.ID = newID()
	}
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`INSERT INTO invoices (id, customer_name, invoice_date, total_amount, total_discount, net_total, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		inv.ID, inv.CustomerName, utc(inv.InvoiceDate), inv.TotalAmount, inv.TotalDiscount, inv.NetTotal, t.s.stamp())
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (s *Store) ListInvoices(ctx context.Context, page Page) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	err := s.db.SelectContext(ctx, &invoices, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at, invoice_date`+page.clause())
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	var inv domain.Invoice
	if err := s.db.GetContext(ctx, &inv, s.db.Rebind(`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`), id); err != nil {
		return domain.Invoice{}, notFound(err)
	}
	return inv, nil
}

// InvoiceMedicineName resolves the medicine billed by an invoice through
// its stock movement. It returns "" when the invoice debited no stock.
func (s *Store) InvoiceMedicineName(ctx context.Context, invoiceID string) (string, error) {
	var name string
	err := s.db.GetContext(ctx, &name, s.db.Rebind(`SELECT ms.medicine_name FROM stock_movements sm
                JOIN medicine_stocks ms ON ms.id = sm.stock_id
                WHERE sm.invoice_id = ? ORDER BY sm.created_at LIMIT 1`), invoiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve invoice medicine: %w", err)
	}
	return name, nil
}

// DeleteInvoice removes the invoice. Stock it debited is not restored.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "invoices", id)
}
