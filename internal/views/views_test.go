package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"medstore/m/domain"
)

func TestRenderPageInsideLayout(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "pages/manageSupplier", map[string]any{
		"Title":     "Manage Supplier",
		"StoreName": "Gopal Medical Store",
		"Suppliers": []domain.Supplier{{ID: "s-1", Name: "Acme <Pharma>", Email: "a@acme.test"}},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Gopal Medical Store", "Manage Supplier", "Acme &lt;Pharma&gt;", `value="s-1"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestRenderUnknownPageWritesNothing(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := r.Render(rec, http.StatusOK, "pages/nope", nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestFormatters(t *testing.T) {
	if got := formatDate(time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)); got != "2024-03-01" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q", got)
	}
	if got := formatMoney(decimal.RequireFromString("7.5")); got != "7.50" {
		t.Errorf("formatMoney = %q", got)
	}
}
