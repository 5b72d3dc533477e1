package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
)

type mockBrands struct{ mock.Mock }

func (m *mockBrands) AddOrGet(ctx context.Context, name string, category catalog.Category) (*brands.Brand, bool, error) {
	args := m.Called(ctx, name, category)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*brands.Brand), args.Bool(1), args.Error(2)
}

func (m *mockBrands) ListByCategory(ctx context.Context, category catalog.Category) ([]brands.Brand, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brands.Brand), args.Error(1)
}

func (m *mockBrands) ListAll(ctx context.Context) ([]brands.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]brands.Brand), args.Error(1)
}

func (m *mockBrands) GetByID(ctx context.Context, id int64) (*brands.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*brands.Brand), args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) AddBatch(ctx context.Context, items []products.Product) products.BatchResult {
	args := m.Called(ctx, items)
	return args.Get(0).(products.BatchResult)
}

func (m *mockProducts) List(ctx context.Context, opts ...products.ListOption) ([]products.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]products.Product), args.Error(1)
}

func (m *mockProducts) Count(ctx context.Context, opts ...products.ListOption) (int, error) {
	args := m.Called(ctx, opts)
	return args.Int(0), args.Error(1)
}

func (m *mockProducts) ListByBrand(ctx context.Context, brandID int64) ([]products.Product, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]products.Product), args.Error(1)
}

func (m *mockProducts) GetByID(ctx context.Context, id int64) (*products.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*products.Product), args.Error(1)
}

func (m *mockProducts) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *mockProducts) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSales struct{ mock.Mock }

func (m *mockSales) Add(ctx context.Context, productID, adminID int64, quantity int, price float64) (*sales.Sale, error) {
	args := m.Called(ctx, productID, adminID, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *mockSales) ListAll(ctx context.Context) ([]sales.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *mockSales) ListByAdminAndDateRange(ctx context.Context, adminID int64, from, to time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, adminID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *mockSales) ListByDateRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

type mockStats struct{ mock.Mock }

func (m *mockStats) Stats(ctx context.Context) ([]catalog.Stat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Stat), args.Error(1)
}
