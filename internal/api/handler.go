package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"medstore/m/internal/auth"
	"medstore/m/internal/billing"
	"medstore/m/internal/logger"
	"medstore/m/internal/metrics"
	"medstore/m/internal/ratelimit"
	"medstore/m/internal/store"
	"medstore/m/internal/views"
)

// Options carries the optional collaborators of a Handler. Zero values
// disable the matching feature.
type Options struct {
	StoreName      string
	AllowedOrigins []string
	Auth           *auth.Authenticator
	Metrics        *metrics.Metrics
	Limiter        *ratelimit.Limiter
	Logger         *zap.Logger
	Now            func() time.Time
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	billing *billing.Service
	views   *views.Renderer

	auth      *auth.Authenticator
	metrics   *metrics.Metrics
	limiter   *ratelimit.Limiter
	log       *zap.Logger
	storeName string
	origins   []string
	now       func() time.Time
}

// New constructs a Handler.
func New(s *store.Store, b *billing.Service, v *views.Renderer, opts Options) *Handler {
	h := &Handler{
		store:     s,
		billing:   b,
		views:     v,
		auth:      opts.Auth,
		metrics:   opts.Metrics,
		limiter:   opts.Limiter,
		log:       opts.Logger,
		storeName: opts.StoreName,
		origins:   opts.AllowedOrigins,
		now:       opts.Now,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.metrics == nil {
		h.metrics = metrics.New("medstore")
	}
	if h.limiter == nil {
		h.limiter = ratelimit.New(nil, 0, 0, h.log)
	}
	if len(h.origins) == 0 {
		h.origins = []string{"*"}
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Router wires up the pages and the JSON helpers.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(h.log))
	r.Use(middleware.Recoverer)
	r.Use(h.metrics.Middleware)
	r.Use(methodOverride)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		api.Use(h.limiter.Middleware)
		api.Use(h.auth.Middleware)
		api.Get("/getGenericName", h.getGenericName)
		api.Get("/getCustomerInfo", h.getCustomerInfo)
		api.Get("/getMedicineInfo", h.getMedicineInfo)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.auth.Middleware)

		pr.Get("/", h.dashboard)

		pr.Get("/addSupplier", h.addSupplierPage)
		pr.Post("/addSupplier", h.createSupplier)
		pr.Get("/manageSupplier", h.manageSupplier)
		pr.Post("/deleteSupplier", h.deleteSupplier)

		pr.Get("/addMedicine", h.addMedicinePage)
		pr.Post("/addMedicine", h.createMedicine)
		pr.Get("/manageMedicine", h.manageMedicine)
		pr.Post("/deleteMedicine", h.deleteMedicine)

		pr.Get("/addPurchase", h.addPurchasePage)
		pr.Post("/addPurchase", h.createPurchase)
		pr.Get("/managePurchase", h.managePurchase)
		pr.Delete("/deletePurchase/{id}", h.deletePurchase)

		pr.Get("/manageMedicineStock", h.stockPage("Medicine Stock", "No stock recorded.", h.listStocks))
		pr.Get("/outOfStock", h.stockPage("Out of Stock", "Nothing is out of stock.", h.listOutOfStock))
		pr.Get("/expiredMedicine", h.stockPage("Expired Medicine", "No expired batches.", h.listExpired))

		pr.Get("/addCustomer", h.addCustomerPage)
		pr.Post("/addCustomer", h.createCustomer)
		pr.Get("/manageCustomer", h.manageCustomer)
		pr.Post("/deleteCustomer", h.deleteCustomer)

		pr.Get("/newInvoice", h.newInvoicePage)
		pr.Post("/newInvoice", h.createInvoice)
		pr.Get("/manageInvoice", h.manageInvoice)
		pr.Post("/deleteInvoice", h.deleteInvoice)
		pr.Get("/invoice/{id}/pdf", h.invoicePDF)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("health check failed", zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Dashboard(r.Context(), h.now())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	data := h.pageData(r, "Dashboard")
	data["Stats"] = stats
	h.render(w, r, http.StatusOK, "pages/index", data)
}

// methodOverride lets HTML forms reach DELETE routes with a hidden
// _method field.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.FormValue("_method")); m {
			case http.MethodDelete, http.MethodPut, http.MethodPatch:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Rendering helpers

func (h *Handler) pageData(r *http.Request, title string) map[string]any {
	return map[string]any{
		"Title":         title,
		"StoreName":     h.storeName,
		"Authenticated": auth.UserFromContext(r.Context()) != "",
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		logger.FromContext(r.Context()).Error("render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := h.pageData(r, http.StatusText(status))
	data["Code"] = status
	data["Message"] = message
	h.render(w, r, status, "pages/error", data)
}

// errorStatus maps a domain error to its HTTP status and the message shown
// to the client.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, store.ErrValidation), errors.Is(err, billing.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, billing.ErrInsufficientStock):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
	}
	h.renderError(w, r, status, message)
}

func (h *Handler) handleJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
	}
	respondError(w, status, message)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
