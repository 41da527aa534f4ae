package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// JSON helpers used by the purchase and invoice forms to prefill fields.

func requireQuery(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		respondError(w, http.StatusBadRequest, key+" is required")
		return "", false
	}
	return v, true
}

func (h *Handler) getGenericName(w http.ResponseWriter, r *http.Request) {
	name, ok := requireQuery(w, r, "medicine")
	if !ok {
		return
	}
	m, err := h.store.FindMedicineByName(r.Context(), name)
	if err != nil {
		h.handleJSONError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"genericName": m.GenericName})
}

func (h *Handler) getCustomerInfo(w http.ResponseWriter, r *http.Request) {
	name, ok := requireQuery(w, r, "customer")
	if !ok {
		return
	}
	c, err := h.store.FindCustomerByName(r.Context(), name)
	if err != nil {
		h.handleJSONError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"contact":       c.Contact,
		"address":       c.Address,
		"doctorName":    c.DoctorName,
		"doctorAddress": c.DoctorAddress,
	})
}

type medicineInfo struct {
	StockID        string          `json:"stockId"`
	Packing        string          `json:"packing"`
	GenericName    string          `json:"genericName"`
	BatchID        string          `json:"batchId"`
	ExpirationDate string          `json:"expirationDate"`
	Quantity       int64           `json:"quantity"`
	MRP            decimal.Decimal `json:"mrp"`
	Rate           decimal.Decimal `json:"rate"`
}

func (h *Handler) getMedicineInfo(w http.ResponseWriter, r *http.Request) {
	name, ok := requireQuery(w, r, "medicine")
	if !ok {
		return
	}
	s, err := h.store.LatestStockByMedicine(r.Context(), name)
	if err != nil {
		h.handleJSONError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, medicineInfo{
		StockID:        s.ID,
		Packing:        s.Packing,
		GenericName:    s.GenericName,
		BatchID:        s.BatchID,
		ExpirationDate: s.ExpirationDate.Format(dateLayout),
		Quantity:       s.Quantity,
		MRP:            s.MRP,
		Rate:           s.Rate,
	})
}
