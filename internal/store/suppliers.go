package store

import (
	"context"
	"fmt"

	"medstore/m/domain"
)

func (s *Store) CreateSupplier(ctx context.Context, sup *domain.Supplier) error {
	if sup.ID == "" {
		sup.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO suppliers (id, name, email, contact, address, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		sup.ID, sup.Name, sup.Email, sup.Contact, sup.Address, s.stamp())
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (s *Store) ListSuppliers(ctx context.Context, page Page) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := s.db.SelectContext(ctx, &suppliers, `SELECT id, name, email, contact, address, created_at FROM suppliers ORDER BY created_at, name`+page.clause())
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "suppliers", id)
}
