// Package billing creates invoices and debits the stock batch they bill.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"medstore/m/domain"
	"medstore/m/internal/logger"
	"medstore/m/internal/store"
)

var (
	ErrInsufficientStock = store.ErrInsufficientStock
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Invoice outcomes reported to the Recorder.
const (
	OutcomeDebited           = "debited"
	OutcomeStockMissing      = "stock_missing"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeFailed            = "failed"
)

// Recorder counts invoice outcomes.
type Recorder interface {
	ObserveInvoice(outcome string)
}

// InvoiceRequest is a billing of Quantity units from the stock batch
// StockID to one customer.
type InvoiceRequest struct {
	CustomerName  string
	Date          time.Time
	Quantity      int64
	NetTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalAmount   decimal.Decimal
	StockID       string
}

type InvoiceResult struct {
	Invoice           domain.Invoice
	StockDebited      bool
	RemainingQuantity int64
}

// Service coordinates the invoice write and the stock decrement.
type Service struct {
	store    *store.Store
	recorder Recorder
}

// NewService constructs a Service. recorder may be nil.
func NewService(s *store.Store, recorder Recorder) *Service {
	return &Service{store: s, recorder: recorder}
}

// CreateInvoice persists the invoice and, in the same transaction, debits
// the referenced stock batch with a conditional update. A batch holding
// less than the billed quantity aborts the whole operation with
// ErrInsufficientStock. A missing batch does not: the invoice is kept and
// the omission is logged.
func (s *Service) CreateInvoice(ctx context.Context, req InvoiceRequest) (InvoiceResult, error) {
	log := logger.FromContext(ctx)
	stockID := strings.TrimSpace(req.StockID)
	if stockID != "" && req.Quantity <= 0 {
		return InvoiceResult{}, ErrInvalidQuantity
	}

	result := InvoiceResult{Invoice: domain.Invoice{
		CustomerName:  req.CustomerName,
		InvoiceDate:   req.Date,
		TotalAmount:   req.TotalAmount,
		TotalDiscount: req.TotalDiscount,
		NetTotal:      req.NetTotal,
	}}

	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		result.StockDebited = false
		if err := tx.InsertInvoice(ctx, &result.Invoice); err != nil {
			return err
		}
		if stockID == "" {
			return nil
		}

		remaining, err := tx.DecrementStock(ctx, stockID, req.Quantity)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.InsertMovement(ctx, &domain.StockMovement{
			StockID:   stockID,
			InvoiceID: result.Invoice.ID,
			Quantity:  req.Quantity,
			Kind:      domain.MovementInvoice,
		}); err != nil {
			return err
		}
		result.StockDebited = true
		result.RemainingQuantity = remaining
		return nil
	})

	switch {
	case errors.Is(err, ErrInsufficientStock):
		s.observe(OutcomeInsufficientStock)
		log.Warn("invoice rejected", zap.String("stock_id", stockID), zap.Int64("quantity", req.Quantity), zap.Error(err))
		return InvoiceResult{}, err
	case err != nil:
		s.observe(OutcomeFailed)
		return InvoiceResult{}, fmt.Errorf("create invoice: %w", err)
	case !result.StockDebited:
		s.observe(OutcomeStockMissing)
		log.Warn("invoice saved without stock debit: stock record not found",
			zap.String("invoice_id", result.Invoice.ID),
			zap.String("stock_id", stockID))
	default:
		s.observe(OutcomeDebited)
		log.Info("invoice created",
			zap.String("invoice_id", result.Invoice.ID),
			zap.String("stock_id", stockID),
			zap.Int64("remaining", result.RemainingQuantity))
	}
	return result, nil
}

func (s *Service) observe(outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveInvoice(outcome)
	}
}
