package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/infra/db"
)

type Repo struct{ db db.DBTX }

func NewRepo(db db.DBTX) *Repo { return &Repo{db: db} }

func scanBrand(row pgx.Row) (*Brand, error) {
	var b Brand
	var category string
	if err := row.Scan(&b.ID, &b.Name, &category, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Category = catalog.Category(category)
	return &b, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Brand, error) {
	b, err := scanBrand(r.db.QueryRow(ctx, queryGetByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand %d: %w", id, err)
	}
	return b, nil
}

// AddOrGet returns the brand with this name in the category, creating it when
// missing. created is false when the row already existed.
func (r *Repo) AddOrGet(ctx context.Context, name string, category catalog.Category) (b *Brand, created bool, err error) {
	name = strings.TrimSpace(name)

	b, err = r.find(ctx, name, category)
	if err != nil || b != nil {
		return b, false, err
	}

	b, err = scanBrand(r.db.QueryRow(ctx, queryInsert, name, string(category)))
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert brand %q: %w", name, err)
	}

	// a concurrent insert won the conflict; read its row
	b, err = r.find(ctx, name, category)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, fmt.Errorf("brand %q vanished after conflict", name)
	}
	return b, false, nil
}

func (r *Repo) find(ctx context.Context, name string, category catalog.Category) (*Brand, error) {
	b, err := scanBrand(r.db.QueryRow(ctx, queryGetByNameCategory, name, string(category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find brand %q: %w", name, err)
	}
	return b, nil
}

// ListByCategory returns the category's brands ordered by name.
func (r *Repo) ListByCategory(ctx context.Context, category catalog.Category) ([]Brand, error) {
	return r.list(ctx, queryListByCategory, string(category))
}

// ListAll returns every brand ordered by category, then name.
func (r *Repo) ListAll(ctx context.Context) ([]Brand, error) {
	return r.list(ctx, queryListAll)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Brand, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
