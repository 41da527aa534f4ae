package store

import (
	"context"
	"fmt"

	"medstore/m/domain"
)

func (s *Store) CreateMedicine(ctx context.Context, m *domain.Medicine) error {
	if m.ID == "" {
		m.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO medicines (id, name, packing, generic_name, supplier_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		m.ID, m.Name, m.Packing, m.GenericName, m.SupplierName, s.stamp())
	if err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

func (s *Store) ListMedicines(ctx context.Context, page Page) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines, `SELECT id, name, packing, generic_name, supplier_name, created_at FROM medicines ORDER BY created_at, name`+page.clause())
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

// FindMedicineByName returns the first catalog entry with the exact name.
func (s *Store) FindMedicineByName(ctx context.Context, name string) (domain.Medicine, error) {
	var m domain.Medicine
	err := s.db.GetContext(ctx, &m, s.db.Rebind(`SELECT id, name, packing, generic_name, supplier_name, created_at FROM medicines WHERE name = ? ORDER BY created_at LIMIT 1`), name)
	if err != nil {
		return domain.Medicine{}, notFound(err)
	}
	return m, nil
}

// HasMedicine reports whether a catalog entry with the exact name exists.
func (s *Store) HasMedicine(ctx context.Context, name string) (bool, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM medicines WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("count medicines: %w", err)
	}
	return n > 0, nil
}

func (s *Store) DeleteMedicine(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "medicines", id)
}

// ImportMedicines adds catalog entries in one transaction, skipping names
// that already exist. It returns how many were inserted.
func (s *Store) ImportMedicines(ctx context.Context, medicines []domain.Medicine) (int, error) {
	inserted := 0
	err := s.InTx(ctx, func(tx *Tx) error {
		inserted = 0
		for i := range medicines {
			m := &medicines[i]
			var n int64
			if err := tx.tx.GetContext(ctx, &n, tx.tx.Rebind(`SELECT COUNT(*) FROM medicines WHERE name = ?`), m.Name); err != nil {
				return fmt.Errorf("count medicines: %w", err)
			}
			if n > 0 {
				continue
			}
			if m.ID == "" {
				m.ID = newID()
			}
			if _, err := tx.tx.ExecContext(ctx, tx.tx.Rebind(`INSERT INTO medicines (id, name, packing, generic_name, supplier_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
				m.ID, m.Name, m.Packing, m.GenericName, m.SupplierName, s.stamp()); err != nil {
				return fmt.Errorf("insert medicine %s: %w", m.Name, err)
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}
