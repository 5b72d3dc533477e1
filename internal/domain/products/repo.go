package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/infra/db"
)

var ErrNotFound = errors.New("product not found")

type Repo struct {
	db     db.DBTX
	log    *slog.Logger
	policy MergePolicy
}

type Option func(*Repo)

func WithLogger(log *slog.Logger) Option {
	return func(r *Repo) { r.log = log }
}

func WithMergePolicy(p MergePolicy) Option {
	return func(r *Repo) {
		if p == PriceKeep {
			r.policy = PriceKeep
		}
	}
}

func NewRepo(db db.DBTX, opts ...Option) *Repo {
	r := &Repo{db: db, log: slog.Default(), policy: PriceOverwrite}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddOrMerge inserts the product or, when (brand_id, flavor) exists, adds the
// incoming quantity to the stored one in the same statement.
func (r *Repo) AddOrMerge(ctx context.Context, p Product) (MergeResult, error) {
	query := queryUpsertOverwrite
	if r.policy == PriceKeep {
		query = queryUpsertKeepPrice
	}

	var res MergeResult
	err := r.db.QueryRow(ctx, query, p.BrandID, strings.TrimSpace(p.Flavor), p.Quantity, p.Price).
		Scan(&res.ID, &res.Quantity, &res.Inserted)
	if err != nil {
		return MergeResult{}, fmt.Errorf("upsert product brand=%d flavor=%q: %w", p.BrandID, p.Flavor, err)
	}
	return res, nil
}

// AddBatch upserts items one by one. A failed item is logged and skipped.
func (r *Repo) AddBatch(ctx context.Context, items []Product) BatchResult {
	var out BatchResult
	for _, p := range items {
		res, err := r.AddOrMerge(ctx, p)
		if err != nil {
			r.log.Error("add product failed", "brand_id", p.BrandID, "flavor", p.Flavor, "err", err)
			out.Failed++
			out.Items = append(out.Items, ItemResult{Product: p, Err: err})
			continue
		}
		p.ID = res.ID
		out.Succeeded++
		if res.Inserted {
			out.Inserted++
		} else {
			out.Merged++
		}
		out.Items = append(out.Items, ItemResult{Product: p, Merged: !res.Inserted})
	}
	return out
}

// ListOption shapes the joined products query.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByBrand(brandID int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"p.brand_id": brandID})
	}
}

func ByCategory(c catalog.Category) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"b.category": string(c)})
	}
}

func InStock() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Expr("p.quantity > 0"))
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

func base(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("products p").
		Join("brands b ON b.id = p.brand_id").
		PlaceholderFormat(sq.Dollar)
}

// List returns products ordered by category, brand name and flavor, so
// a single brand comes back ordered by flavor.
func (r *Repo) List(ctx context.Context, opts ...ListOption) ([]Product, error) {
	builder := base(selectColumns...).OrderBy("b.category", "b.name", "p.flavor")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Count accepts the filtering options of List; paging options must not be passed.
func (r *Repo) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := base("COUNT(*)")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *Repo) ListByBrand(ctx context.Context, brandID int64) ([]Product, error) {
	return r.List(ctx, ByBrand(brandID))
}

func (r *Repo) ListAll(ctx context.Context) ([]Product, error) {
	return r.List(ctx)
}

func (r *Repo) ListByCategory(ctx context.Context, c catalog.Category) ([]Product, error) {
	return r.List(ctx, ByCategory(c))
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, queryGetByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// UpdateQuantity sets the absolute stock value.
func (r *Repo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := r.db.Exec(ctx, queryUpdateQuantity, id, quantity)
	if err != nil {
		return fmt.Errorf("update quantity of product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var category string
	if err := row.Scan(&p.ID, &p.BrandID, &p.Flavor, &p.Quantity, &p.Price, &p.CreatedAt,
		&p.BrandName, &category); err != nil {
		return nil, err
	}
	p.Category = catalog.Category(category)
	return &p, nil
}
