package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/pagination"
)

type CatalogMode string

const (
	ModeAll      CatalogMode = "all"
	ModeInStock  CatalogMode = "stock"
	ModeCategory CatalogMode = "cat"
)

// CatalogView selects which products a catalog page lists.
type CatalogView struct {
	Mode     CatalogMode
	Category catalog.Category
}

func (v CatalogView) filters() ([]products.ListOption, error) {
	switch v.Mode {
	case ModeAll, "":
		return nil, nil
	case ModeInStock:
		return []products.ListOption{products.InStock()}, nil
	case ModeCategory:
		if !v.Category.Valid() {
			return nil, ErrUnknownCategory
		}
		return []products.ListOption{products.ByCategory(v.Category)}, nil
	}
	return nil, fmt.Errorf("unknown catalog mode %q", v.Mode)
}

// CatalogPage returns one page of the view; page is clamped to the valid range.
func (s *Shop) CatalogPage(ctx context.Context, view CatalogView, page int) (pagination.Result[products.Product], error) {
	var empty pagination.Result[products.Product]

	filters, err := view.filters()
	if err != nil {
		return empty, err
	}
	total, err := s.products.Count(ctx, filters...)
	if err != nil {
		return empty, err
	}
	params := pagination.Clamp(page, s.pageSize, total)
	if total == 0 {
		return pagination.NewResult([]products.Product{}, 0, params), nil
	}

	opts := append(filters[:len(filters):len(filters)],
		products.WithLimit(uint64(params.PerPage)),
		products.WithOffset(uint64(params.Offset)),
	)
	list, err := s.products.List(ctx, opts...)
	if err != nil {
		return empty, err
	}
	return pagination.NewResult(list, total, params), nil
}

func (s *Shop) CategoryStats(ctx context.Context) ([]catalog.Stat, error) {
	return s.stats.Stats(ctx)
}

func (s *Shop) CategoryBrands(ctx context.Context, c catalog.Category) ([]brands.Brand, error) {
	if !c.Valid() {
		return nil, ErrUnknownCategory
	}
	return s.brands.ListByCategory(ctx, c)
}

func (s *Shop) AllBrands(ctx context.Context) ([]brands.Brand, error) {
	return s.brands.ListAll(ctx)
}

// BrandProducts returns the brand and all of its flavors, in and out of stock.
func (s *Shop) BrandProducts(ctx context.Context, brandID int64) (*brands.Brand, []products.Product, error) {
	b, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, ErrNotFound
	}
	list, err := s.products.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, nil, err
	}
	return b, list, nil
}

func (s *Shop) Product(ctx context.Context, id int64) (*products.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Shop) DeleteProduct(ctx context.Context, id int64) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, products.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

// SalesReport lists sales with from <= sale_date <= to, newest first.
func (s *Shop) SalesReport(ctx context.Context, from, to time.Time) ([]sales.Sale, sales.Totals, error) {
	list, err := s.sales.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, sales.Totals{}, err
	}
	return list, sales.Summarize(list), nil
}

// AdminSalesReport is SalesReport limited to one admin's sales.
func (s *Shop) AdminSalesReport(ctx context.Context, adminID int64, from, to time.Time) ([]sales.Sale, sales.Totals, error) {
	list, err := s.sales.ListByAdminAndDateRange(ctx, adminID, from, to)
	if err != nil {
		return nil, sales.Totals{}, err
	}
	return list, sales.Summarize(list), nil
}

func (s *Shop) AllSales(ctx context.Context) ([]sales.Sale, sales.Totals, error) {
	list, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, sales.Totals{}, err
	}
	return list, sales.Summarize(list), nil
}
