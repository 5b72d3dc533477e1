package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/infra/metrics"
)

// SaleRequest carries the stock seen when the admin picked the product;
// it is not re-read before writing.
type SaleRequest struct {
	ProductID int64
	AdminID   int64
	Stock     int
	Quantity  int
	Price     float64
}

type SaleReceipt struct {
	Sale      *sales.Sale
	Remaining int
}

// ValidateQuantity accepts 0 < qty <= stock.
func ValidateQuantity(qty, stock int) error {
	if qty <= 0 || qty > stock {
		return fmt.Errorf("%w: %d of %d", ErrInvalidQuantity, qty, stock)
	}
	return nil
}

// Sell writes the new stock, then the ledger row. When the ledger write
// fails the stock is set back to the snapshot.
func (s *Shop) Sell(ctx context.Context, req SaleRequest) (*SaleReceipt, error) {
	if err := ValidateQuantity(req.Quantity, req.Stock); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	log := s.log.With("product_id", req.ProductID, "admin_id", req.AdminID, "quantity", req.Quantity)
	remaining := req.Stock - req.Quantity

	if err := s.products.UpdateQuantity(ctx, req.ProductID, remaining); err != nil {
		metrics.SalesTotal.WithLabelValues(metrics.SaleStockFailed).Inc()
		log.Error("sale aborted: stock update failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrStockUpdate, err)
	}

	sale, err := s.sales.Add(ctx, req.ProductID, req.AdminID, req.Quantity, req.Price)
	if err != nil {
		saleErr := fmt.Errorf("%w: %w", ErrSaleNotRecorded, err)

		// absolute set, so repeating it is harmless
		cErr := s.products.UpdateQuantity(context.WithoutCancel(ctx), req.ProductID, req.Stock)
		if cErr != nil {
			metrics.SalesTotal.WithLabelValues(metrics.SaleCompensationFailed).Inc()
			log.Error("sale compensation failed",
				"err", err, "compensation_err", cErr,
				"expected_stock", req.Stock, "written_stock", remaining)
			return nil, errors.Join(saleErr, fmt.Errorf("%w: %w", ErrCompensationFailed, cErr))
		}

		metrics.SalesTotal.WithLabelValues(metrics.SaleCompensated).Inc()
		log.Warn("sale compensated", "err", err, "restored_stock", req.Stock)
		return nil, saleErr
	}

	metrics.SalesTotal.WithLabelValues(metrics.SaleRecorded).Inc()
	log.Info("sale recorded", "sale_id", sale.ID, "price", req.Price, "remaining", remaining)
	return &SaleReceipt{Sale: sale, Remaining: remaining}, nil
}
