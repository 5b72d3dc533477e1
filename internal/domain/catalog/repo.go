package catalog

import (
	"context"
	"fmt"

	"github.com/florzoye/shop/internal/infra/db"
)

type Repo struct{ db db.DBTX }

func NewRepo(db db.DBTX) *Repo { return &Repo{db: db} }

// Stats returns brand, product and unit counts for every known category,
// including empty ones, in menu order.
func (r *Repo) Stats(ctx context.Context) ([]Stat, error) {
	rows, err := r.db.Query(ctx, queryCategoryStats)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	byCat := make(map[Category]Stat)
	for rows.Next() {
		var s Stat
		var code string
		if err := rows.Scan(&code, &s.Brands, &s.Products, &s.Units); err != nil {
			return nil, err
		}
		s.Category = Category(code)
		byCat[s.Category] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Stat, 0, len(known))
	for _, c := range All() {
		s, ok := byCat[c]
		if !ok {
			s = Stat{Category: c}
		}
		out = append(out, s)
	}
	return out, nil
}

const queryCategoryStats = `
	SELECT b.category,
	       COUNT(DISTINCT b.id),
	       COUNT(p.id),
	       COALESCE(SUM(p.quantity), 0)
	FROM brands b
	LEFT JOIN products p ON p.brand_id = b.id
	GROUP BY b.category
`
