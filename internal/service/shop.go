package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/ingest"
	"github.com/florzoye/shop/internal/pagination"
)

type BrandStore interface {
	AddOrGet(ctx context.Context, name string, category catalog.Category) (*brands.Brand, bool, error)
	ListByCategory(ctx context.Context, category catalog.Category) ([]brands.Brand, error)
	ListAll(ctx context.Context) ([]brands.Brand, error)
	GetByID(ctx context.Context, id int64) (*brands.Brand, error)
}

type ProductStore interface {
	AddBatch(ctx context.Context, items []products.Product) products.BatchResult
	List(ctx context.Context, opts ...products.ListOption) ([]products.Product, error)
	Count(ctx context.Context, opts ...products.ListOption) (int, error)
	ListByBrand(ctx context.Context, brandID int64) ([]products.Product, error)
	GetByID(ctx context.Context, id int64) (*products.Product, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}

type SaleStore interface {
	Add(ctx context.Context, productID, adminID int64, quantity int, price float64) (*sales.Sale, error)
	ListAll(ctx context.Context) ([]sales.Sale, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error)
	ListByAdminAndDateRange(ctx context.Context, adminID int64, from, to time.Time) ([]sales.Sale, error)
}

type StatsStore interface {
	Stats(ctx context.Context) ([]catalog.Stat, error)
}

// Shop is the application core shared by the bot and the CLI.
type Shop struct {
	brands   BrandStore
	products ProductStore
	sales    SaleStore
	stats    StatsStore

	log      *slog.Logger
	parser   ingest.Parser
	pageSize int
}

type Option func(*Shop)

func WithLogger(log *slog.Logger) Option {
	return func(s *Shop) { s.log = log }
}

func WithParser(p ingest.Parser) Option {
	return func(s *Shop) { s.parser = p }
}

func WithPageSize(n int) Option {
	return func(s *Shop) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func New(b BrandStore, p ProductStore, sl SaleStore, st StatsStore, opts ...Option) *Shop {
	s := &Shop{
		brands:   b,
		products: p,
		sales:    sl,
		stats:    st,
		log:      slog.Default(),
		parser:   ingest.NewParser(false),
		pageSize: pagination.DefaultPerPage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
