package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medstore/m/domain"
	"medstore/m/internal/billing"
	"medstore/m/internal/invoicepdf"
	"medstore/m/internal/logger"
	"medstore/m/internal/store"
)

// Customers

func (h *Handler) addCustomerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/addCustomer", h.pageData(r, "Add Customer"))
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	c := domain.Customer{
		Name:          f.String("name"),
		Contact:       f.String("contact"),
		Address:       f.String("address"),
		DoctorName:    f.String("doctor_name"),
		DoctorAddress: f.String("doctor_address"),
	}
	if err := h.store.CreateCustomer(r.Context(), &c); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageCustomer")
}

func (h *Handler) manageCustomer(w http.ResponseWriter, r *http.Request) {
	page, p := parsePage(r)
	customers, err := h.store.ListCustomers(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Manage Customer")
	data["Customers"] = customers
	withPager(data, p, len(customers))
	h.render(w, r, http.StatusOK, "pages/manageCustomer", data)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCustomer(r.Context(), r.PostFormValue("customerId")); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageCustomer")
}

// Invoices

func (h *Handler) newInvoicePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customers, err := h.store.ListCustomers(ctx, store.Page{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	stocks, err := h.store.ListStocks(ctx, store.Page{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "New Invoice")
	data["Customers"] = customers
	data["Stocks"] = stocks
	h.render(w, r, http.StatusOK, "pages/newInvoice", data)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	req := billing.InvoiceRequest{
		CustomerName:  f.String("customer_name"),
		Date:          f.Date("date"),
		Quantity:      f.Int("quantity"),
		NetTotal:      f.Money("net_total"),
		TotalDiscount: f.Money("total_discount"),
		TotalAmount:   f.Money("total_amount"),
		StockID:       f.String("stock_id"),
	}
	if err := f.Err(); err != nil {
		h.handleError(w, r, err)
		return
	}
	if _, err := h.billing.CreateInvoice(r.Context(), req); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageInvoice")
}

func (h *Handler) manageInvoice(w http.ResponseWriter, r *http.Request) {
	page, p := parsePage(r)
	invoices, err := h.store.ListInvoices(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Manage Invoice")
	data["Invoices"] = invoices
	withPager(data, p, len(invoices))
	h.render(w, r, http.StatusOK, "pages/manageInvoice", data)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteInvoice(r.Context(), r.PostFormValue("invoiceId")); err != nil {
		h.handleError(w, r, err)
		return
	}
	redirect(w, r, "/manageInvoice")
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	inv, err := h.store.GetInvoice(ctx, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	medicine, err := h.store.InvoiceMedicineName(ctx, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	doc, err := invoicepdf.Render(invoicepdf.Summary{
		StoreName:    h.storeName,
		CustomerName: inv.CustomerName,
		MedicineName: medicine,
		Date:         inv.InvoiceDate,
		Amount:       inv.NetTotal,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+inv.ID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		logger.FromContext(ctx).Error("write invoice pdf failed", zap.String("invoice_id", inv.ID), zap.Error(err))
	}
}
