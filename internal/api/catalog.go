package api

import (
	"net/http"

	"medstore/m/domain"
	"medstore/m/internal/store"
)

// Suppliers

func (h *Handler) addSupplierPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/addSupplier", h.pageData(r, "Add Supplier"))
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	sup := domain.Supplier{
		Name:    f.String("sname"),
		Email:   f.String("smail"),
		Contact: f.String("scontact"),
		Address: f.String("saddress"),
	}
	if err := h.store.CreateSupplier(r.Context(), &sup); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageSupplier")
}

func (h *Handler) manageSupplier(w http.ResponseWriter, r *http.Request) {
	page, p := parsePage(r)
	suppliers, err := h.store.ListSuppliers(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Manage Supplier")
	data["Suppliers"] = suppliers
	withPager(data, p, len(suppliers))
	h.render(w, r, http.StatusOK, "pages/manageSupplier", data)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSupplier(r.Context(), r.PostFormValue("supplierId")); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageSupplier")
}

// Medicines

func (h *Handler) addMedicinePage(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers(r.Context(), store.Page{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Add Medicine")
	data["Suppliers"] = suppliers
	h.render(w, r, http.StatusOK, "pages/addMedicine", data)
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	m := domain.Medicine{
		Name:         f.String("medicine_name"),
		Packing:      f.String("packing"),
		GenericName:  f.String("generic_name"),
		SupplierName: f.String("supplier"),
	}
	if err := h.store.CreateMedicine(r.Context(), &m); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageMedicine")
}

func (h *Handler) manageMedicine(w http.ResponseWriter, r *http.Request) {
	page, p := parsePage(r)
	medicines, err := h.store.ListMedicines(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Manage Medicine")
	data["Medicines"] = medicines
	withPager(data, p, len(medicines))
	h.render(w, r, http.StatusOK, "pages/manageMedicine", data)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMedicine(r.Context(), r.PostFormValue("medicineId")); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageMedicine")
}
