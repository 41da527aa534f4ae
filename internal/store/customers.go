package store

import (
	"context"
	"fmt"
	"strings"

	"medstore/m/domain"
)

func validateCustomer(c *domain.Customer) error {
	for _, f := range []struct{ name, value string }{
		{"name", c.Name},
		{"contact", c.Contact},
		{"address", c.Address},
	} {
		if err := required(f.name, strings.TrimSpace(f.value)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO customers (id, name, contact, address, doctor_name, doctor_address, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.Name, c.Contact, c.Address, c.DoctorName, c.DoctorAddress, s.stamp())
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (s *Store) ListCustomers(ctx context.Context, page Page) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := s.db.SelectContext(ctx, &customers, `SELECT id, name, contact, address, doctor_name, doctor_address, created_at FROM customers ORDER BY created_at, name`+page.clause())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// FindCustomerByName returns the first customer with the exact name.
func (s *Store) FindCustomerByName(ctx context.Context, name string) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT id, name, contact, address, doctor_name, doctor_address, created_at FROM customers WHERE name = ? ORDER BY created_at LIMIT 1`), name)
	if err != nil {
		return domain.Customer{}, notFound(err)
	}
	return c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "customers", id)
}
