package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"medstore/m/domain"
	"medstore/m/internal/store"
)

// Purchases

func (h *Handler) addPurchasePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	suppliers, err := h.store.ListSuppliers(ctx, store.Page{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	medicines, err := h.store.ListMedicines(ctx, store.Page{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Add Purchase")
	data["Suppliers"] = suppliers
	data["Medicines"] = medicines
	h.render(w, r, http.StatusOK, "pages/addPurchase", data)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	purchase := domain.Purchase{
		SupplierName:  f.String("supplier"),
		InvoiceNumber: f.String("inv_no"),
		PaymentType:   f.String("pay_type"),
		PurchaseDate:  f.Date("date"),
		TotalAmount:   f.Money("grand_total"),
	}
	stock := domain.MedicineStock{
		MedicineName:   f.String("medicine_name"),
		Packing:        f.String("packing"),
		GenericName:    f.String("generic_name"),
		BatchID:        f.String("batch_id"),
		ExpirationDate: f.Date("date1"),
		Quantity:       f.Int("quantity"),
		MRP:            f.Money("mrp"),
		Rate:           f.Money("rate"),
		Amount:         f.Money("amount"),
	}
	if err := f.Err(); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := h.store.CreatePurchase(r.Context(), &purchase, &stock); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/managePurchase")
}

func (h *Handler) managePurchase(w http.ResponseWriter, r *http.Request) {
	page, p := parsePage(r)
	purchases, err := h.store.ListPurchases(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Manage Purchase")
	data["Purchases"] = purchases
	withPager(data, p, len(purchases))
	h.render(w, r, http.StatusOK, "pages/managePurchase", data)
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePurchase(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/managePurchase")
}

// Stock views

type stockLister func(r *http.Request, page store.Page) ([]domain.MedicineStock, error)

func (h *Handler) stockPage(title, empty string, list stockLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, p := parsePage(r)
		stocks, err := list(r, page)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		data := h.pageData(r, title)
		data["Stocks"] = stocks
		data["Empty"] = empty
		withPager(data, p, len(stocks))
		h.render(w, r, http.StatusOK, "pages/stocks", data)
	}
}

func (h *Handler) listStocks(r *http.Request, page store.Page) ([]domain.MedicineStock, error) {
	return h.store.ListStocks(r.Context(), page)
}

func (h *Handler) listOutOfStock(r *http.Request, page store.Page) ([]domain.MedicineStock, error) {
	return h.store.OutOfStock(r.Context(), page)
}

func (h *Handler) listExpired(r *http.Request, page store.Page) ([]domain.MedicineStock, error) {
	return h.store.Expired(r.Context(), h.now(), page)
}
