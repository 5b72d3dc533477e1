package sales

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/infra/db"
)

const queryInsert = `
	INSERT INTO sales (product_id, admin_id, quantity, price, sale_date)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, sale_date
`

type Repo struct{ db db.DBTX }

func NewRepo(db db.DBTX) *Repo { return &Repo{db: db} }

// Add appends a ledger row; the database assigns sale_date.
func (r *Repo) Add(ctx context.Context, productID, adminID int64, quantity int, price float64) (*Sale, error) {
	s := Sale{ProductID: productID, AdminID: adminID, Quantity: quantity, Price: price}
	if err := r.db.QueryRow(ctx, queryInsert, productID, adminID, quantity, price).
		Scan(&s.ID, &s.SaleDate); err != nil {
		return nil, fmt.Errorf("insert sale for product %d: %w", productID, err)
	}
	return &s, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// Between keeps rows with from <= sale_date <= to.
func Between(from, to time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Expr("s.sale_date BETWEEN ? AND ?", from, to))
	}
}

func ByAdmin(adminID int64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"s.admin_id": adminID})
	}
}

// List returns joined ledger rows, newest first.
func (r *Repo) List(ctx context.Context, opts ...ListOption) ([]Sale, error) {
	builder := sq.Select(
		"s.id", "s.product_id", "s.admin_id", "s.quantity", "s.price", "s.sale_date",
		"COALESCE(p.flavor, '')", "COALESCE(b.name, '')", "COALESCE(b.category, '')",
		"COALESCE(u.username, '')",
	).
		From("sales s").
		LeftJoin("products p ON p.id = s.product_id").
		LeftJoin("brands b ON b.id = p.brand_id").
		LeftJoin("users u ON u.telegram_id = s.admin_id").
		OrderBy("s.sale_date DESC", "s.id DESC").
		PlaceholderFormat(sq.Dollar)

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		var category string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.AdminID, &s.Quantity, &s.Price, &s.SaleDate,
			&s.Flavor, &s.BrandName, &category, &s.AdminUsername); err != nil {
			return nil, err
		}
		s.Category = catalog.Category(category)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ListAll(ctx context.Context) ([]Sale, error) {
	return r.List(ctx)
}

// ListByDateRange is inclusive on both ends.
func (r *Repo) ListByDateRange(ctx context.Context, from, to time.Time) ([]Sale, error) {
	return r.List(ctx, Between(from, to))
}

// ListByAdminAndDateRange keeps only the sales recorded by adminID.
func (r *Repo) ListByAdminAndDateRange(ctx context.Context, adminID int64, from, to time.Time) ([]Sale, error) {
	return r.List(ctx, Between(from, to), ByAdmin(adminID))
}
