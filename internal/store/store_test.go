package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"medstore/m/domain"
	"medstore/m/internal/database"
	"medstore/m/internal/migrations"
	"medstore/m/internal/store"
)

func setupStore(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	db, err := database.Connect(":memory:?_time_format=sqlite")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db), context.Background()
}

func addStock(t *testing.T, ctx context.Context, s *store.Store, name string, qty int64, expires time.Time) domain.MedicineStock {
	t.Helper()
	stock := domain.MedicineStock{
		MedicineName:   name,
		Packing:        "10 tabs",
		GenericName:    name + " generic",
		BatchID:        "B-" + name,
		ExpirationDate: expires,
		SupplierName:   "Acme Pharma",
		Quantity:       qty,
		MRP:            decimal.RequireFromString("12.50"),
		Rate:           decimal.RequireFromString("10.00"),
		Amount:         decimal.NewFromInt(qty * 10),
	}
	if err := s.InsertStock(ctx, &stock); err != nil {
		t.Fatalf("InsertStock: %v", err)
	}
	return stock
}

func TestSupplierRoundTrip(t *testing.T) {
	s, ctx := setupStore(t)

	before, err := s.ListSuppliers(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	sup := domain.Supplier{Name: "Acme Pharma", Email: "sales@acme.test", Contact: "555-0101", Address: "1 Main St"}
	if err := s.CreateSupplier(ctx, &sup); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if sup.ID == "" {
		t.Fatal("expected generated id")
	}

	after, err := s.ListSuppliers(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d suppliers, got %d", len(before)+1, len(after))
	}
	got := after[len(after)-1]
	if got.ID != sup.ID || got.Name != sup.Name || got.Email != sup.Email || got.Contact != sup.Contact || got.Address != sup.Address {
		t.Errorf("round trip mismatch: got %+v want %+v", got, sup)
	}
}

func TestMedicineRoundTripAndLookup(t *testing.T) {
	s, ctx := setupStore(t)

	med := domain.Medicine{Name: "Paracetamol", Packing: "10 tabs", GenericName: "Acetaminophen", SupplierName: "Acme Pharma"}
	if err := s.CreateMedicine(ctx, &med); err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	list, err := s.ListMedicines(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListMedicines: %v", err)
	}
	if len(list) != 1 || list[0].SupplierName != "Acme Pharma" || list[0].GenericName != "Acetaminophen" {
		t.Fatalf("unexpected medicines: %+v", list)
	}

	found, err := s.FindMedicineByName(ctx, "Paracetamol")
	if err != nil {
		t.Fatalf("FindMedicineByName: %v", err)
	}
	if found.ID != med.ID {
		t.Errorf("found %s, want %s", found.ID, med.ID)
	}
	if _, err := s.FindMedicineByName(ctx, "Ibuprofen"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatePurchaseWritesStock(t *testing.T) {
	s, ctx := setupStore(t)

	purchase := domain.Purchase{
		SupplierName:  "Acme Pharma",
		InvoiceNumber: "INV-1",
		PaymentType:   "cash",
		PurchaseDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("100.00"),
	}
	stock := domain.MedicineStock{
		MedicineName:   "Paracetamol",
		BatchID:        "P-01",
		ExpirationDate: time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:       10,
		MRP:            decimal.RequireFromString("12.50"),
		Rate:           decimal.RequireFromString("10"),
		Amount:         decimal.RequireFromString("100"),
	}
	if err := s.CreatePurchase(ctx, &purchase, &stock); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	purchases, err := s.ListPurchases(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(purchases) != 1 || !purchases[0].TotalAmount.Equal(purchase.TotalAmount) || !purchases[0].PurchaseDate.Equal(purchase.PurchaseDate) {
		t.Fatalf("unexpected purchases: %+v", purchases)
	}

	got, err := s.GetStock(ctx, stock.ID)
	if err != nil {
		t.Fatalf("GetStock: %v", err)
	}
	if got.SupplierName != "Acme Pharma" {
		t.Errorf("stock supplier = %q, want copied from purchase", got.SupplierName)
	}
	if got.Quantity != 10 || !got.MRP.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected stock %+v", got)
	}
	if !got.ExpirationDate.Equal(stock.ExpirationDate) {
		t.Errorf("expiration = %s, want %s", got.ExpirationDate, stock.ExpirationDate)
	}
}

func TestCustomerValidation(t *testing.T) {
	s, ctx := setupStore(t)

	tests := []struct {
		name     string
		customer domain.Customer
		wantErr  bool
	}{
		{"complete", domain.Customer{Name: "Ravi", Contact: "999", Address: "Pune", DoctorName: "Dr. Rao"}, false},
		{"missing name", domain.Customer{Contact: "999", Address: "Pune"}, true},
		{"missing contact", domain.Customer{Name: "Ravi", Address: "Pune"}, true},
		{"blank address", domain.Customer{Name: "Ravi", Contact: "999", Address: "   "}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.customer
			err := s.CreateCustomer(ctx, &c)
			if tt.wantErr && !errors.Is(err, store.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	customers, err := s.ListCustomers(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected only the valid customer, got %d", len(customers))
	}
	found, err := s.FindCustomerByName(ctx, "Ravi")
	if err != nil || found.DoctorName != "Dr. Rao" {
		t.Errorf("FindCustomerByName = %+v, %v", found, err)
	}
}

func TestDeleteUnknownIDLeavesCollection(t *testing.T) {
	s, ctx := setupStore(t)

	sup := domain.Supplier{Name: "Acme"}
	if err := s.CreateSupplier(ctx, &sup); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	med := domain.Medicine{Name: "Paracetamol"}
	if err := s.CreateMedicine(ctx, &med); err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}

	deletes := map[string]func(context.Context, string) error{
		"supplier": s.DeleteSupplier,
		"medicine": s.DeleteMedicine,
		"purchase": s.DeletePurchase,
		"customer": s.DeleteCustomer,
		"invoice":  s.DeleteInvoice,
	}
	for name, del := range deletes {
		if err := del(ctx, "does-not-exist"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}

	suppliers, _ := s.ListSuppliers(ctx, store.Page{})
	medicines, _ := s.ListMedicines(ctx, store.Page{})
	if len(suppliers) != 1 || len(medicines) != 1 {
		t.Errorf("collections changed: %d suppliers, %d medicines", len(suppliers), len(medicines))
	}

	if err := s.DeleteSupplier(ctx, sup.ID); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}
	if err := s.DeleteSupplier(ctx, sup.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestOutOfStockReturnsOnlyZeroQuantity(t *testing.T) {
	s, ctx := setupStore(t)
	future := time.Now().AddDate(1, 0, 0)

	empty1 := addStock(t, ctx, s, "Aspirin", 0, future)
	addStock(t, ctx, s, "Paracetamol", 10, future)
	empty2 := addStock(t, ctx, s, "Cetirizine", 0, future)
	addStock(t, ctx, s, "Ibuprofen", 1, future)

	got, err := s.OutOfStock(ctx, store.Page{})
	if err != nil {
		t.Fatalf("OutOfStock: %v", err)
	}
	ids := map[string]bool{}
	for _, st := range got {
		if st.Quantity != 0 {
			t.Errorf("batch %s has quantity %d", st.MedicineName, st.Quantity)
		}
		ids[st.ID] = true
	}
	if len(got) != 2 || !ids[empty1.ID] || !ids[empty2.ID] {
		t.Errorf("unexpected out-of-stock set: %+v", got)
	}
}

func TestExpiredReturnsOnlyPastBatches(t *testing.T) {
	s, ctx := setupStore(t)
	now := time.Now()

	old := addStock(t, ctx, s, "Aspirin", 5, now.AddDate(0, -1, 0))
	justPast := addStock(t, ctx, s, "Cetirizine", 5, now.Add(-time.Minute))
	addStock(t, ctx, s, "Paracetamol", 5, now.Add(time.Hour))
	addStock(t, ctx, s, "Ibuprofen", 5, now.AddDate(2, 0, 0))

	got, err := s.Expired(ctx, now, store.Page{})
	if err != nil {
		t.Fatalf("Expired: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 expired batches, got %d: %+v", len(got), got)
	}
	for _, st := range got {
		if st.ID != old.ID && st.ID != justPast.ID {
			t.Errorf("unexpected expired batch %s", st.MedicineName)
		}
		if !st.Expired(now) {
			t.Errorf("batch %s expires %s, not before %s", st.MedicineName, st.ExpirationDate, now)
		}
	}
}

func TestPagination(t *testing.T) {
	s, ctx := setupStore(t)
	for _, name := range []string{"A", "B", "C"} {
		sup := domain.Supplier{Name: name}
		if err := s.CreateSupplier(ctx, &sup); err != nil {
			t.Fatalf("CreateSupplier: %v", err)
		}
	}

	page, err := s.ListSuppliers(ctx, store.Page{Limit: 2})
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 rows, got %d", len(page))
	}
	rest, err := s.ListSuppliers(ctx, store.Page{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 row, got %d", len(rest))
	}
}

func TestDecrementStock(t *testing.T) {
	s, ctx := setupStore(t)
	stock := addStock(t, ctx, s, "Paracetamol", 4, time.Now().AddDate(1, 0, 0))

	var remaining int64
	err := s.InTx(ctx, func(tx *store.Tx) error {
		var err error
		remaining, err = tx.DecrementStock(ctx, stock.ID, 3)
		return err
	})
	if err != nil || remaining != 1 {
		t.Fatalf("DecrementStock = %d, %v; want 1, nil", remaining, err)
	}

	err = s.InTx(ctx, func(tx *store.Tx) error {
		_, err := tx.DecrementStock(ctx, stock.ID, 2)
		return err
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	err = s.InTx(ctx, func(tx *store.Tx) error {
		_, err := tx.DecrementStock(ctx, "missing", 1)
		return err
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	got, _ := s.GetStock(ctx, stock.ID)
	if got.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", got.Quantity)
	}
}

func TestDashboard(t *testing.T) {
	s, ctx := setupStore(t)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for _, c := range []domain.Customer{
		{Name: "Ravi", Contact: "1", Address: "x"},
		{Name: "Asha", Contact: "2", Address: "y"},
	} {
		c := c
		if err := s.CreateCustomer(ctx, &c); err != nil {
			t.Fatalf("CreateCustomer: %v", err)
		}
	}
	sup := domain.Supplier{Name: "Acme"}
	if err := s.CreateSupplier(ctx, &sup); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	addStock(t, ctx, s, "Aspirin", 0, now.AddDate(1, 0, 0))
	addStock(t, ctx, s, "Cetirizine", 3, now.AddDate(0, 0, -2))

	invoices := []domain.Invoice{
		{CustomerName: "Ravi", InvoiceDate: now, TotalAmount: decimal.NewFromInt(50), NetTotal: decimal.RequireFromString("45.50")},
		{CustomerName: "Asha", InvoiceDate: now, TotalAmount: decimal.NewFromInt(20), NetTotal: decimal.RequireFromString("20.25")},
		{CustomerName: "Asha", InvoiceDate: now.AddDate(0, 0, -3), TotalAmount: decimal.NewFromInt(99), NetTotal: decimal.NewFromInt(99)},
	}
	for i := range invoices {
		if err := s.InTx(ctx, func(tx *store.Tx) error { return tx.InsertInvoice(ctx, &invoices[i]) }); err != nil {
			t.Fatalf("InsertInvoice: %v", err)
		}
	}
	purchase := domain.Purchase{SupplierName: "Acme", PurchaseDate: now, TotalAmount: decimal.NewFromInt(300)}
	if err := s.CreatePurchase(ctx, &purchase, &domain.MedicineStock{MedicineName: "Ibuprofen", Quantity: 30, ExpirationDate: now.AddDate(1, 0, 0)}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	stats, err := s.Dashboard(ctx, now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalCustomers != 2 || stats.TotalSuppliers != 1 || stats.TotalInvoices != 3 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.OutOfStockMedicines != 1 || stats.ExpiredMedicines != 1 {
		t.Errorf("unexpected stock counts: %+v", stats)
	}
	if !stats.TodaySales.Equal(decimal.RequireFromString("65.75")) {
		t.Errorf("TodaySales = %s, want 65.75", stats.TodaySales)
	}
	if !stats.TodayPurchases.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TodayPurchases = %s, want 300", stats.TodayPurchases)
	}
}

func TestDashboardTodayInServerZone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ist := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"utc", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"west morning", time.Date(2024, 6, 1, 10, 0, 0, 0, est)},
		{"west late evening", time.Date(2024, 6, 1, 22, 0, 0, 0, est)},
		{"east early morning", time.Date(2024, 6, 1, 3, 0, 0, 0, ist)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, ctx := setupStore(t)
			invoices := []domain.Invoice{
				{CustomerName: "Ravi", InvoiceDate: day, TotalAmount: decimal.NewFromInt(40), NetTotal: decimal.RequireFromString("37.50")},
				{CustomerName: "Ravi", InvoiceDate: day.AddDate(0, 0, -1), TotalAmount: decimal.NewFromInt(10), NetTotal: decimal.NewFromInt(10)},
				{CustomerName: "Ravi", InvoiceDate: day.AddDate(0, 0, 1), TotalAmount: decimal.NewFromInt(15), NetTotal: decimal.NewFromInt(15)},
			}
			for i := range invoices {
				if err := s.InTx(ctx, func(tx *store.Tx) error { return tx.InsertInvoice(ctx, &invoices[i]) }); err != nil {
					t.Fatalf("InsertInvoice: %v", err)
				}
			}
			purchase := domain.Purchase{SupplierName: "Acme", PurchaseDate: day, TotalAmount: decimal.NewFromInt(50)}
			if err := s.CreatePurchase(ctx, &purchase, &domain.MedicineStock{MedicineName: "Ibuprofen", Quantity: 5, ExpirationDate: day.AddDate(1, 0, 0)}); err != nil {
				t.Fatalf("CreatePurchase: %v", err)
			}

			stats, err := s.Dashboard(ctx, tc.now)
			if err != nil {
				t.Fatalf("Dashboard: %v", err)
			}
			if !stats.TodayPurchases.Equal(decimal.NewFromInt(50)) {
				t.Errorf("TodayPurchases = %s, want 50", stats.TodayPurchases)
			}
			if !stats.TodaySales.Equal(decimal.RequireFromString("37.50")) {
				t.Errorf("TodaySales = %s, want 37.50", stats.TodaySales)
			}
		})
	}
}

func TestListsKeepInsertionOrder(t *testing.T) {
	s, ctx := setupStore(t)

	names := []string{"Charlie", "Alpha", "Bravo", "Delta"}
	for _, name := range names {
		sup := domain.Supplier{Name: name}
		if err := s.CreateSupplier(ctx, &sup); err != nil {
			t.Fatalf("CreateSupplier(%s): %v", name, err)
		}
		m := domain.Medicine{Name: name, Packing: "10 tabs", GenericName: name, SupplierName: name}
		if err := s.CreateMedicine(ctx, &m); err != nil {
			t.Fatalf("CreateMedicine(%s): %v", name, err)
		}
	}

	suppliers, err := s.ListSuppliers(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	medicines, err := s.ListMedicines(ctx, store.Page{})
	if err != nil {
		t.Fatalf("ListMedicines: %v", err)
	}
	if len(suppliers) != len(names) || len(medicines) != len(names) {
		t.Fatalf("got %d suppliers and %d medicines, want %d", len(suppliers), len(medicines), len(names))
	}
	for i, name := range names {
		if suppliers[i].Name != name {
			t.Errorf("suppliers[%d] = %q, want %q", i, suppliers[i].Name, name)
		}
		if medicines[i].Name != name {
			t.Errorf("medicines[%d] = %q, want %q", i, medicines[i].Name, name)
		}
	}
}
